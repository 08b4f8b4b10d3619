package api_test

import (
	"testing"

	"github.com/mkavanagh/revapi/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraverseToAPIReturnsSelfWhenAlreadyPrimary(t *testing.T) {
	primary := api.NewFileArchive("primary.go", nil)
	a := api.NewAPI([]api.Archive{primary}, nil)
	start := &fakeElement{BaseElement: api.NewBaseElement(a, primary, "pkg.Foo"), kind: api.KindClass}

	path := api.TraverseToAPI(a, start)

	require.Len(t, path, 1)
	assert.Same(t, api.Element(start), path[0])
}

func TestTraverseToAPIFindsPathThroughReturnType(t *testing.T) {
	primaryArchive := api.NewFileArchive("primary.go", nil)
	depArchive := api.NewFileArchive("dep.go", nil)
	a := api.NewAPI([]api.Archive{primaryArchive}, []api.Archive{depArchive})

	target := &fakeElement{BaseElement: api.NewBaseElement(a, primaryArchive, "pkg.Result"), kind: api.KindClass}
	start := &fakeElement{BaseElement: api.NewBaseElement(a, depArchive, "dep.Helper"), kind: api.KindClass}
	start.AddUseSite(&api.UseSite{Site: start, Target: target, Type: api.UseTypeReturnType})

	path := api.TraverseToAPI(a, start)

	require.Len(t, path, 2)
	assert.Same(t, api.Element(start), path[0])
	assert.Same(t, api.Element(target), path[1])
}

func TestTraverseToAPIIgnoresNonPropagatingUseTypes(t *testing.T) {
	primaryArchive := api.NewFileArchive("primary.go", nil)
	depArchive := api.NewFileArchive("dep.go", nil)
	a := api.NewAPI([]api.Archive{primaryArchive}, []api.Archive{depArchive})

	target := &fakeElement{BaseElement: api.NewBaseElement(a, primaryArchive, "pkg.Owner"), kind: api.KindClass}
	start := &fakeElement{BaseElement: api.NewBaseElement(a, depArchive, "dep.Member"), kind: api.KindField}
	start.AddUseSite(&api.UseSite{Site: start, Target: target, Type: api.UseTypeContains})

	assert.Nil(t, api.TraverseToAPI(a, start))
}

func TestTraverseToAPIToleratesCycles(t *testing.T) {
	depArchive := api.NewFileArchive("dep.go", nil)
	a := api.NewAPI(nil, []api.Archive{depArchive})

	x := &fakeElement{BaseElement: api.NewBaseElement(a, depArchive, "dep.X"), kind: api.KindClass}
	y := &fakeElement{BaseElement: api.NewBaseElement(a, depArchive, "dep.Y"), kind: api.KindClass}
	x.AddUseSite(&api.UseSite{Site: x, Target: y, Type: api.UseTypeFieldType})
	y.AddUseSite(&api.UseSite{Site: y, Target: x, Type: api.UseTypeFieldType})

	assert.Nil(t, api.TraverseToAPI(a, x))
}

func TestUseTypeMovesToAPI(t *testing.T) {
	assert.True(t, api.UseTypeReturnType.MovesToAPI())
	assert.True(t, api.UseTypeExtends.MovesToAPI())
	assert.False(t, api.UseTypeAnnotates.MovesToAPI())
	assert.False(t, api.UseTypeContains.MovesToAPI())
}
