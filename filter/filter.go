// Package filter implements ElementFilter and its conjunctive
// composition, the predicate gate the traversal in package engine
// consults before analyzing a pair and before descending into it.
package filter

import "github.com/mkavanagh/revapi/api"

// ElementFilter decides whether a pair is analyzed and whether descent
// into its children happens. Applies(nil) must be true: an absent
// element never disqualifies a pair from analysis on its own.
type ElementFilter interface {
	// Applies reports whether element should be considered part of the
	// analysis. Called with nil to mean "the other side has no
	// counterpart here", which must return true.
	Applies(element api.Element) bool

	// ShouldDescendInto reports whether the traversal should recurse
	// into element's children. Only ever called with a non-nil element.
	ShouldDescendInto(element api.Element) bool
}

// composite ANDs together zero or more ElementFilters. An empty
// composite accepts everything and descends everywhere, matching the
// spec's "no filters configured" edge case without a special case in
// the traversal itself.
type composite struct {
	filters []ElementFilter
}

// Compose combines filters conjunctively: the result's Applies is the
// logical AND of every filter's Applies, and likewise for
// ShouldDescendInto.
func Compose(filters ...ElementFilter) ElementFilter {
	flat := make([]ElementFilter, 0, len(filters))
	for _, f := range filters {
		if f == nil {
			continue
		}
		flat = append(flat, f)
	}
	return &composite{filters: flat}
}

func (c *composite) Applies(element api.Element) bool {
	for _, f := range c.filters {
		if !f.Applies(element) {
			return false
		}
	}
	return true
}

func (c *composite) ShouldDescendInto(element api.Element) bool {
	for _, f := range c.filters {
		if !f.ShouldDescendInto(element) {
			return false
		}
	}
	return true
}

// Func adapts two plain functions into an ElementFilter, for the common
// case of a filter with no state of its own.
type Func struct {
	AppliesFn           func(api.Element) bool
	ShouldDescendIntoFn func(api.Element) bool
}

func (f Func) Applies(element api.Element) bool {
	if f.AppliesFn == nil {
		return true
	}
	return f.AppliesFn(element)
}

func (f Func) ShouldDescendInto(element api.Element) bool {
	if f.ShouldDescendIntoFn == nil {
		return true
	}
	return f.ShouldDescendIntoFn(element)
}
