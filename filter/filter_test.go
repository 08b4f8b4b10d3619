package filter_test

import (
	"testing"

	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/filter"
	"github.com/stretchr/testify/assert"
)

type stubElement struct {
	name string
}

func (e *stubElement) API() *api.API             { return nil }
func (e *stubElement) Archive() api.Archive      { return nil }
func (e *stubElement) Parent() api.Element       { return nil }
func (e *stubElement) Children() []api.Element   { return nil }
func (e *stubElement) FullName() string          { return e.name }
func (e *stubElement) Kind() api.Kind            { return api.KindClass }
func (e *stubElement) CompareTo(api.Element) int { return 0 }
func (e *stubElement) UseSites() []*api.UseSite  { return nil }

func TestComposeEmptyAcceptsEverything(t *testing.T) {
	f := filter.Compose()

	assert.True(t, f.Applies(nil))
	assert.True(t, f.Applies(&stubElement{name: "Foo"}))
	assert.True(t, f.ShouldDescendInto(&stubElement{name: "Foo"}))
}

func TestComposeIsConjunctive(t *testing.T) {
	onlyFoo := filter.Func{AppliesFn: func(e api.Element) bool { return e == nil || e.FullName() == "Foo" }}
	neverDescend := filter.Func{ShouldDescendIntoFn: func(api.Element) bool { return false }}

	f := filter.Compose(onlyFoo, neverDescend)

	assert.True(t, f.Applies(&stubElement{name: "Foo"}))
	assert.False(t, f.Applies(&stubElement{name: "Bar"}))
	assert.False(t, f.ShouldDescendInto(&stubElement{name: "Foo"}))
}

func TestComposeIgnoresNilFilters(t *testing.T) {
	f := filter.Compose(nil, filter.Func{})

	assert.True(t, f.Applies(&stubElement{name: "Foo"}))
}

func TestFuncDefaultsToAcceptWhenUnset(t *testing.T) {
	f := filter.Func{}

	assert.True(t, f.Applies(&stubElement{name: "Foo"}))
	assert.True(t, f.ShouldDescendInto(&stubElement{name: "Foo"}))
}
