package engine

import (
	"strings"

	"github.com/mkavanagh/revapi/api"
)

// testElement is a minimal api.Element used across engine tests: an
// opaque name, ordered by simple lexicographic comparison, with
// explicit children.
type testElement struct {
	name     string
	kind     api.Kind
	children []api.Element
}

func newTestElement(kind api.Kind, name string, children ...api.Element) *testElement {
	return &testElement{name: name, kind: kind, children: children}
}

func (e *testElement) API() *api.API           { return nil }
func (e *testElement) Archive() api.Archive    { return nil }
func (e *testElement) Parent() api.Element     { return nil }
func (e *testElement) Children() []api.Element { return e.children }
func (e *testElement) FullName() string        { return e.name }
func (e *testElement) Kind() api.Kind          { return e.kind }
func (e *testElement) UseSites() []*api.UseSite { return nil }

func (e *testElement) CompareTo(other api.Element) int {
	return strings.Compare(e.name, other.(*testElement).name)
}

func elementsOf(names ...string) []api.Element {
	out := make([]api.Element, len(names))
	for i, n := range names {
		out[i] = newTestElement(api.KindClass, n)
	}
	return out
}
