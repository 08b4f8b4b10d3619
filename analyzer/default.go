package analyzer

import (
	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/check"
	"github.com/mkavanagh/revapi/config"
)

// DefaultDifferenceAnalyzer is the DifferenceAnalyzer every built-in
// Analyzer uses: it multiplexes element pairs over a fixed set of
// Checks, keyed by element kind.
//
// It maintains a kind stack, pushed on begin and popped on end, used to
// find which checks to close, and relies on each Check to keep its own
// per-check active stack across the matching Visit/VisitEnd calls.
//
// Annotations get special treatment. By convention (see
// api.CompareNames) annotations sort last among siblings and are always
// leaves, so this analyzer never pushes them onto the kind stack.
// Instead an annotation pair's differences are produced inline, at
// begin time, and buffered against the enclosing non-annotation frame;
// EndAnalysis for the annotation pair itself always returns an empty
// report, and the buffered differences are appended when that enclosing
// frame closes.
type DefaultDifferenceAnalyzer struct {
	checks       []check.Check
	checksByKind map[api.Kind][]check.Check

	kindStack         []api.Kind
	annotationBuffers [][]*api.Difference
}

// NewDefaultDifferenceAnalyzer builds a DefaultDifferenceAnalyzer over
// checks, in registration order. Registration order is preserved within
// each kind's dispatch list, which is what makes "checks' emitted
// differences in check-registration order" a property of this
// implementation rather than something callers must re-sort for.
func NewDefaultDifferenceAnalyzer(checks ...check.Check) *DefaultDifferenceAnalyzer {
	byKind := make(map[api.Kind][]check.Check)
	for _, c := range checks {
		for kind := range c.Interest() {
			byKind[kind] = append(byKind[kind], c)
		}
	}
	return &DefaultDifferenceAnalyzer{checks: checks, checksByKind: byKind}
}

// Initialize initializes every check, in registration order, and
// supplies the per-side environments. It is not part of the
// DifferenceAnalyzer interface - a concrete Analyzer calls it once it
// has built both environments, before returning its Result.
func (d *DefaultDifferenceAnalyzer) Initialize(cfg *config.Configuration, oldEnv, newEnv check.Environment) error {
	for _, c := range d.checks {
		if err := c.Initialize(cfg); err != nil {
			return err
		}
		c.SetOldEnvironment(oldEnv)
		c.SetNewEnvironment(newEnv)
	}
	return nil
}

func (d *DefaultDifferenceAnalyzer) Open() error  { return nil }
func (d *DefaultDifferenceAnalyzer) Close() error { return nil }

func kindOf(oldElement, newElement api.Element) api.Kind {
	if oldElement != nil {
		return oldElement.Kind()
	}
	return newElement.Kind()
}

func (d *DefaultDifferenceAnalyzer) BeginAnalysis(oldElement, newElement api.Element) {
	kind := kindOf(oldElement, newElement)
	interested := d.checksByKind[kind]

	if kind == api.KindAnnotation {
		for _, c := range interested {
			c.Visit(kind, oldElement, newElement)
		}
		var diffs []*api.Difference
		for _, c := range interested {
			diffs = append(diffs, c.VisitEnd(kind)...)
		}
		if n := len(d.annotationBuffers); n > 0 {
			d.annotationBuffers[n-1] = append(d.annotationBuffers[n-1], diffs...)
		}
		return
	}

	for _, c := range interested {
		c.Visit(kind, oldElement, newElement)
	}
	d.kindStack = append(d.kindStack, kind)
	d.annotationBuffers = append(d.annotationBuffers, nil)
}

func (d *DefaultDifferenceAnalyzer) EndAnalysis(oldElement, newElement api.Element) *api.Report {
	kind := kindOf(oldElement, newElement)

	if kind == api.KindAnnotation {
		return &api.Report{OldElement: oldElement, NewElement: newElement}
	}

	n := len(d.kindStack)
	d.kindStack = d.kindStack[:n-1]

	var diffs []*api.Difference
	for _, c := range d.checksByKind[kind] {
		diffs = append(diffs, c.VisitEnd(kind)...)
	}

	bn := len(d.annotationBuffers)
	buffered := d.annotationBuffers[bn-1]
	d.annotationBuffers = d.annotationBuffers[:bn-1]
	diffs = append(diffs, buffered...)

	return &api.Report{OldElement: oldElement, NewElement: newElement, Differences: diffs}
}
