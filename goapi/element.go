package goapi

import (
	"reflect"

	"github.com/mkavanagh/revapi/api"
)

// Element is the concrete api.Element the goapi Analyzer builds: a
// package, a named type (always api.KindClass, per the shared-kind-tag
// decision recorded in SPEC_FULL.md), a field, a method, a parameter, or
// a struct-tag-derived annotation.
type Element struct {
	api.BaseElement

	kind Kind
	// goKind distinguishes a struct from an interface from a defined
	// basic type for named types, all of which share api.KindClass.
	goKind reflect.Kind

	typeString string
	tag        reflect.StructTag
	contentHash uint64
	hasContent  bool
}

// Kind is a type alias so this file reads naturally; it is exactly
// api.Kind.
type Kind = api.Kind

// NewElement builds an Element. children are attached and parent-linked
// by AddChild, not by this constructor.
func NewElement(base api.BaseElement, kind api.Kind) *Element {
	return &Element{BaseElement: base, kind: kind}
}

func (e *Element) Kind() api.Kind { return e.kind }

// CompareTo delegates to api.CompareNames, the default comparator every
// concrete Element in this module uses: lexicographic on FullName, with
// annotations sorted last among siblings.
func (e *Element) CompareTo(other api.Element) int {
	return api.CompareNames(e, other)
}

// GoKind reports the underlying reflect.Kind for a named type (struct,
// interface, or a defined basic type); zero value for elements that are
// not KindClass.
func (e *Element) GoKind() reflect.Kind { return e.goKind }

// TypeString is the type of a field or parameter, the full signature of
// a method, or the raw tag of a struct-tag annotation, as rendered from
// source; empty for elements it does not apply to.
func (e *Element) TypeString() string { return e.typeString }

// Tag returns a field's struct tag, or the empty tag for elements that
// do not carry one.
func (e *Element) Tag() reflect.StructTag { return e.tag }

// ContentHash returns the fingerprint of a method's source text and
// whether one was computed; used by checks.MethodChanged to flag a body
// edit that left the signature untouched.
func (e *Element) ContentHash() (uint64, bool) { return e.contentHash, e.hasContent }

// SetGoKind records the underlying reflect.Kind for a named type. Only
// meaningful for a KindClass element; the analyzer that built the tree
// is responsible for calling it at build time, before the tree is
// handed to Traverse.
func (e *Element) SetGoKind(k reflect.Kind) { e.goKind = k }

// SetTypeString records the declared type of a field, method signature,
// or parameter, as rendered from source.
func (e *Element) SetTypeString(s string) { e.typeString = s }

// SetTag records a field's struct tag.
func (e *Element) SetTag(t reflect.StructTag) { e.tag = t }

// SetContentHash records the fingerprint of a method's source text.
func (e *Element) SetContentHash(h uint64, ok bool) { e.contentHash, e.hasContent = h, ok }

// AddChild attaches child to parent. Callers must call parent.SortChildren()
// once every child has been added, before the tree is handed to
// Traverse, so Children() returns siblings in the tree's total order.
func AddChild(parent *Element, child api.Element) {
	parent.AddChildElement(parent, child)
}
