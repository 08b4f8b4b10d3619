// Package check defines the Check contract: a state machine, keyed by
// element kind, that inspects element pairs as the traversal opens and
// closes them and emits Differences on close.
package check

import (
	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/config"
)

// Environment is whatever an Analyzer hands a Check to let it resolve
// references beyond the two elements currently being visited - the full
// tree, a type-resolution facility, or (for the reference Go analyzer in
// package goapi) a *goapi.Environment. The core does not look inside it.
type Environment interface{}

// Check inspects pairs of elements sharing a api.Kind and emits
// api.Difference values describing what changed between them. A Check
// is a tagged-variant visitor rather than a nominal one: Interest
// reports which kinds it cares about, and the engine dispatches to
// Visit/VisitEnd with the kind as an explicit argument instead of
// calling a per-kind method, so a Check can be added for a kind the
// core has never heard of.
//
// The engine guarantees:
//   - Initialize is called exactly once before any Visit;
//   - every Visit call is matched by exactly one later VisitEnd call for
//     the same kind, in LIFO order relative to the Visit calls that
//     preceded it;
//   - Visit and VisitEnd are never called concurrently for the same
//     Check.
type Check interface {
	// Initialize is called once, before any traversal, with the
	// analysis-wide configuration.
	Initialize(cfg *config.Configuration) error

	// SetOldEnvironment and SetNewEnvironment supply the per-side
	// resolution environment before traversal begins.
	SetOldEnvironment(env Environment)
	SetNewEnvironment(env Environment)

	// Interest returns the set of kinds this Check wants to visit. A
	// Check with an empty interest set is never sent a Visit or
	// VisitEnd call.
	Interest() map[api.Kind]struct{}

	// Visit is called when the traversal opens a pair of the given
	// kind. Either element may be nil (addition/removal). Implementations
	// typically push a record describing the pair onto an internal
	// stack for VisitEnd to pop.
	Visit(kind api.Kind, oldElement, newElement api.Element)

	// VisitEnd is called when the traversal closes the most recently
	// opened pair of the given kind. It returns the differences (if
	// any) that pair's close should contribute to the report.
	VisitEnd(kind api.Kind) []*api.Difference
}
