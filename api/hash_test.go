package api_test

import (
	"testing"

	"github.com/mkavanagh/revapi/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHashIsStableAndSensitive(t *testing.T) {
	a, err := api.ContentHash([]byte("func Foo() { return 1 }"))
	require.NoError(t, err)
	b, err := api.ContentHash([]byte("func Foo() { return 1 }"))
	require.NoError(t, err)
	c, err := api.ContentHash([]byte("func Foo() { return 2 }"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
