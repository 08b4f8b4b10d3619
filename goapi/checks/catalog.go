// Package checks is the starter catalog of check.Check implementations
// for the goapi Analyzer. Each follows the push-active/pop-if-active
// pattern from the original Revapi Java analyzer's
// KindChanged.doVisitClass/doEnd: Visit pushes a small "active elements"
// record only when the pair is interesting, and VisitEnd pops it and
// does the real comparison only if something was pushed.
package checks

import "github.com/mkavanagh/revapi/check"

// DefaultCatalog returns a fresh instance of every built-in check, in
// the order goapi.Analyzer registers them.
func DefaultCatalog() []check.Check {
	return []check.Check{
		NewClassKindChanged(),
		NewFieldChanged(),
		NewMethodChanged(),
		NewAnnotationChanged(),
	}
}
