package checks_test

import (
	"testing"

	"github.com/mkavanagh/revapi/goapi/checks"
	"github.com/stretchr/testify/assert"
)

func TestDefaultCatalogRegistersOneCheckPerKind(t *testing.T) {
	catalog := checks.DefaultCatalog()

	assert.Len(t, catalog, 4)
	seen := map[string]bool{}
	for _, c := range catalog {
		for kind := range c.Interest() {
			seen[string(kind)] = true
		}
	}
	assert.True(t, seen["class"])
	assert.True(t, seen["field"])
	assert.True(t, seen["method"])
	assert.True(t, seen["annotation"])
}
