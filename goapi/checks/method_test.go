package checks_test

import (
	"testing"

	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/goapi"
	"github.com/mkavanagh/revapi/goapi/checks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMethod(name, signature string, hash uint64, hasHash bool) *goapi.Element {
	e := goapi.NewElement(api.NewBaseElement(nil, nil, name), api.KindMethod)
	e.SetTypeString(signature)
	e.SetContentHash(hash, hasHash)
	return e
}

func TestMethodChangedFlagsSignatureChange(t *testing.T) {
	c := checks.NewMethodChanged()
	old := newMethod("pkg.Foo.Bar", "(int) (string)", 1, true)
	new_ := newMethod("pkg.Foo.Bar", "(int, int) (string)", 1, true)

	c.Visit(api.KindMethod, old, new_)
	diffs := c.VisitEnd(api.KindMethod)

	require.Len(t, diffs, 1)
	assert.Equal(t, "go.method.signatureChanged", diffs[0].Code())
	assert.Equal(t, api.SeverityBreaking, diffs[0].Severity(api.DimensionBinary))
}

func TestMethodChangedFlagsImplementationOnlyChange(t *testing.T) {
	c := checks.NewMethodChanged()
	old := newMethod("pkg.Foo.Bar", "(int) (string)", 111, true)
	new_ := newMethod("pkg.Foo.Bar", "(int) (string)", 222, true)

	c.Visit(api.KindMethod, old, new_)
	diffs := c.VisitEnd(api.KindMethod)

	require.Len(t, diffs, 1)
	assert.Equal(t, "go.method.implementationChanged", diffs[0].Code())
	assert.Equal(t, api.SeverityPotentiallyBreaking, diffs[0].Severity(api.DimensionSemantic))
}

func TestMethodChangedIgnoresUnchangedMethod(t *testing.T) {
	c := checks.NewMethodChanged()
	old := newMethod("pkg.Foo.Bar", "(int) (string)", 111, true)
	new_ := newMethod("pkg.Foo.Bar", "(int) (string)", 111, true)

	c.Visit(api.KindMethod, old, new_)

	assert.Empty(t, c.VisitEnd(api.KindMethod))
}

func TestMethodChangedIgnoresContentChangeWhenHashUnavailable(t *testing.T) {
	c := checks.NewMethodChanged()
	old := newMethod("pkg.Foo.Bar", "(int) (string)", 0, false)
	new_ := newMethod("pkg.Foo.Bar", "(int) (string)", 0, false)

	c.Visit(api.KindMethod, old, new_)

	assert.Empty(t, c.VisitEnd(api.KindMethod))
}
