package api_test

import (
	"testing"

	"github.com/mkavanagh/revapi/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeElement is the minimal api.Element used across this package's
// tests: a BaseElement plus a fixed kind, matching how goapi.Element
// wraps BaseElement in the real analyzer.
type fakeElement struct {
	api.BaseElement
	kind api.Kind
}

func newFakeElement(a *api.API, archive api.Archive, name string, kind api.Kind) *fakeElement {
	return &fakeElement{BaseElement: api.NewBaseElement(a, archive, name), kind: kind}
}

func (e *fakeElement) Kind() api.Kind { return e.kind }

func (e *fakeElement) CompareTo(other api.Element) int {
	return api.CompareNames(e, other)
}

func TestAddChildElementBackfillsParent(t *testing.T) {
	parent := newFakeElement(nil, nil, "pkg", api.KindPackage)
	child := newFakeElement(nil, nil, "pkg.Foo", api.KindClass)

	parent.AddChildElement(parent, child)

	require.Len(t, parent.Children(), 1)
	assert.Same(t, api.Element(parent), child.Parent())
	assert.Same(t, api.Element(child), parent.Children()[0])
}

func TestSortChildrenOrdersByCompareTo(t *testing.T) {
	parent := newFakeElement(nil, nil, "pkg", api.KindPackage)
	c := newFakeElement(nil, nil, "pkg.C", api.KindClass)
	a := newFakeElement(nil, nil, "pkg.A", api.KindClass)
	b := newFakeElement(nil, nil, "pkg.B", api.KindClass)

	parent.AddChildElement(parent, c)
	parent.AddChildElement(parent, a)
	parent.AddChildElement(parent, b)
	parent.SortChildren()

	names := make([]string, 0, 3)
	for _, child := range parent.Children() {
		names = append(names, child.FullName())
	}
	assert.Equal(t, []string{"pkg.A", "pkg.B", "pkg.C"}, names)
}

func TestCompareNamesSortsAnnotationsLast(t *testing.T) {
	anno := newFakeElement(nil, nil, "AAA", api.KindAnnotation)
	class := newFakeElement(nil, nil, "ZZZ", api.KindClass)

	assert.Positive(t, api.CompareNames(anno, class))
	assert.Negative(t, api.CompareNames(class, anno))
}

func TestCompareNamesFallsBackToLexicographic(t *testing.T) {
	a := newFakeElement(nil, nil, "a", api.KindField)
	b := newFakeElement(nil, nil, "b", api.KindField)

	assert.Negative(t, api.CompareNames(a, b))
	assert.Positive(t, api.CompareNames(b, a))
	assert.Zero(t, api.CompareNames(a, a))
}
