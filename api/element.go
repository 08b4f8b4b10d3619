package api

import (
	"sort"
	"strings"
)

// Kind tags an Element with the sort of API construct it represents.
// The core treats Kind as an opaque string rather than a nominal type
// hierarchy: dispatch to Checks is a map lookup on Kind, not a type
// switch, which lets an Analyzer introduce kinds the core has never
// heard of. By convention (preserved from the systems this design is
// modeled on) every named type - class, interface, enum, annotation type -
// shares KindClass; a Check that cares about the distinction inspects the
// element itself to tell them apart.
type Kind string

const (
	KindPackage    Kind = "package"
	KindClass      Kind = "class"
	KindMethod     Kind = "method"
	KindField      Kind = "field"
	KindParameter  Kind = "parameter"
	KindAnnotation Kind = "annotation"
)

// Element is a node in one of the two API trees being compared. Elements
// are produced once by an Analyzer and are read-only for the remainder
// of the analysis; nothing in the core ever mutates one.
//
// Children() must return a slice that is already in the tree's total
// order: the same comparator must order corresponding siblings on both
// the old and the new side, since that order is what co-iteration (see
// package engine) relies on to walk both trees in lock step.
type Element interface {
	// API returns the API this element's tree belongs to.
	API() *API

	// Archive returns the archive that owns this element. For a type
	// referenced from another archive (a supplementary dependency) this
	// may differ from any archive in API().Primary().
	Archive() Archive

	// Parent returns the enclosing element, or nil for a root.
	Parent() Element

	// Children returns the element's children in the tree's total order.
	Children() []Element

	// FullName is a human-readable, fully-qualified name used only in
	// messages; it is never interpreted by the engine.
	FullName() string

	// Kind reports the element-kind tag used for Check dispatch.
	Kind() Kind

	// CompareTo orders this element against another sibling under the
	// tree's total order. It returns a negative number, zero, or a
	// positive number as this element sorts before, at the same
	// position as, or after other. Two distinct siblings comparing
	// equal is undefined behavior; implementations should treat it as a
	// programmer error in the Analyzer that built the tree.
	CompareTo(other Element) int

	// UseSites returns the use-sites for which this element is the
	// referring site. Analyzers that do not track use-sites may return
	// nil.
	UseSites() []*UseSite
}

// BaseElement provides the bookkeeping every concrete Element needs -
// owning API and archive, parent link, ordered children, and outgoing
// use-sites, and FullName() - so an Analyzer only has to supply Kind()
// and CompareTo() for its own node types.
type BaseElement struct {
	api      *API
	archive  Archive
	parent   Element
	children []Element
	useSites []*UseSite
	name     string
}

// NewBaseElement constructs a BaseElement. Children can be attached
// afterwards with AddChildElement, which also back-fills the child's parent
// link.
func NewBaseElement(api *API, archive Archive, name string) BaseElement {
	return BaseElement{api: api, archive: archive, name: name}
}

func (b *BaseElement) API() *API           { return b.api }
func (b *BaseElement) Archive() Archive    { return b.archive }
func (b *BaseElement) Parent() Element     { return b.parent }
func (b *BaseElement) Children() []Element { return b.children }
func (b *BaseElement) FullName() string    { return b.name }
func (b *BaseElement) UseSites() []*UseSite {
	return b.useSites
}

// SetParent records the owning element. Called by the parent when a
// child is attached; not part of the public Element contract.
func (b *BaseElement) SetParent(parent Element) { b.parent = parent }

// AddChildElement appends child to the children slice and back-fills
// its parent link to self. self is passed explicitly because a
// BaseElement embedded in a concrete type cannot recover the outer
// value's Element interface on its own. Children built this way must
// have SortChildren called once the full set is known, since Children()
// must return siblings in the tree's total order.
func (b *BaseElement) AddChildElement(self Element, child Element) {
	b.children = append(b.children, child)
	if setter, ok := child.(interface{ SetParent(Element) }); ok {
		setter.SetParent(self)
	}
}

// SortChildren orders children by CompareTo, satisfying the ordering
// invariant co-iteration (see package engine) relies on.
func (b *BaseElement) SortChildren() {
	sort.Slice(b.children, func(i, j int) bool {
		return b.children[i].CompareTo(b.children[j]) < 0
	})
}

// AddUseSite records an outgoing reference from this element.
func (b *BaseElement) AddUseSite(site *UseSite) {
	b.useSites = append(b.useSites, site)
}

// CompareNames is the default sibling comparator: lexicographic order
// on FullName, with elements of KindAnnotation always sorted last so the
// default DifferenceAnalyzer's annotation specialization (see package
// analyzer) can rely on annotations being tree leaves visited after
// their non-annotation siblings.
func CompareNames(a, b Element) int {
	aAnno, bAnno := a.Kind() == KindAnnotation, b.Kind() == KindAnnotation
	if aAnno != bAnno {
		if aAnno {
			return 1
		}
		return -1
	}
	return strings.Compare(a.FullName(), b.FullName())
}
