package checks_test

import (
	"reflect"
	"testing"

	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/goapi"
	"github.com/mkavanagh/revapi/goapi/checks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClass(name string, goKind reflect.Kind) *goapi.Element {
	e := goapi.NewElement(api.NewBaseElement(nil, nil, name), api.KindClass)
	e.SetGoKind(goKind)
	return e
}

func TestClassKindChangedFlagsStructToInterface(t *testing.T) {
	c := checks.NewClassKindChanged()
	old := newClass("pkg.Foo", reflect.Struct)
	new_ := newClass("pkg.Foo", reflect.Interface)

	c.Visit(api.KindClass, old, new_)
	diffs := c.VisitEnd(api.KindClass)

	require.Len(t, diffs, 1)
	assert.Equal(t, "go.class.kindChanged", diffs[0].Code())
	assert.Equal(t, api.SeverityBreaking, diffs[0].Severity(api.DimensionSource))
	assert.Equal(t, api.SeverityBreaking, diffs[0].Severity(api.DimensionBinary))
}

func TestClassKindChangedIgnoresUnchangedKind(t *testing.T) {
	c := checks.NewClassKindChanged()
	old := newClass("pkg.Foo", reflect.Struct)
	new_ := newClass("pkg.Foo", reflect.Struct)

	c.Visit(api.KindClass, old, new_)

	assert.Empty(t, c.VisitEnd(api.KindClass))
}

func TestClassKindChangedIgnoresAdditionOrRemoval(t *testing.T) {
	c := checks.NewClassKindChanged()

	c.Visit(api.KindClass, newClass("pkg.Removed", reflect.Struct), nil)
	assert.Empty(t, c.VisitEnd(api.KindClass))

	c.Visit(api.KindClass, nil, newClass("pkg.Added", reflect.Struct))
	assert.Empty(t, c.VisitEnd(api.KindClass))
}

func TestClassKindChangedInterest(t *testing.T) {
	c := checks.NewClassKindChanged()

	_, ok := c.Interest()[api.KindClass]
	assert.True(t, ok)
}
