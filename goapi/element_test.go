package goapi_test

import (
	"reflect"
	"testing"

	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/goapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddChildThenSortChildrenOrdersByCompareTo(t *testing.T) {
	pkg := goapi.NewElement(api.NewBaseElement(nil, nil, "pkg"), api.KindPackage)
	zebra := goapi.NewElement(api.NewBaseElement(nil, nil, "pkg.Zebra"), api.KindClass)
	apple := goapi.NewElement(api.NewBaseElement(nil, nil, "pkg.Apple"), api.KindClass)

	goapi.AddChild(pkg, zebra)
	goapi.AddChild(pkg, apple)
	pkg.SortChildren()

	require.Len(t, pkg.Children(), 2)
	assert.Equal(t, "pkg.Apple", pkg.Children()[0].FullName())
	assert.Equal(t, "pkg.Zebra", pkg.Children()[1].FullName())
	assert.Same(t, api.Element(pkg), pkg.Children()[0].Parent())
}

func TestElementGoKindDefaultsToZeroValue(t *testing.T) {
	field := goapi.NewElement(api.NewBaseElement(nil, nil, "pkg.Foo.Bar"), api.KindField)

	assert.Equal(t, reflect.Invalid, field.GoKind())
	assert.Equal(t, "", field.TypeString())
	assert.Equal(t, reflect.StructTag(""), field.Tag())
	_, ok := field.ContentHash()
	assert.False(t, ok)
}
