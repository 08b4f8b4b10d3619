package engine

import (
	"github.com/mkavanagh/revapi/analyzer"
	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/filter"
)

// Dispatch receives one report per analyzed pair, in the order the
// traversal closes them. It is expected to route the report through a
// transform chain and on to reporters (see Sink) - or, in a test, simply
// record it.
type Dispatch func(report *api.Report)

// Traverse co-iterates oldRoots against newRoots and recurses into every
// matched pair's children, calling da.BeginAnalysis/EndAnalysis around
// each visited pair and handing every resulting report to dispatch.
//
// For every BeginAnalysis call this makes, exactly one matching
// EndAnalysis call follows, after all of that pair's descendant
// begin/end calls have completed - the structural guarantee Checks rely
// on to use a stack.
func Traverse(oldRoots, newRoots []api.Element, f filter.ElementFilter, da analyzer.DifferenceAnalyzer, dispatch Dispatch) {
	for _, pair := range CoIterate(oldRoots, newRoots) {
		traversePair(pair.Old, pair.New, f, da, dispatch)
	}
}

func traversePair(oldElement, newElement api.Element, f filter.ElementFilter, da analyzer.DifferenceAnalyzer, dispatch Dispatch) {
	analyzeThis := f.Applies(oldElement) && f.Applies(newElement)

	if analyzeThis {
		da.BeginAnalysis(oldElement, newElement)
	}

	if oldElement != nil && newElement != nil &&
		f.ShouldDescendInto(oldElement) && f.ShouldDescendInto(newElement) {
		for _, childPair := range CoIterate(oldElement.Children(), newElement.Children()) {
			traversePair(childPair.Old, childPair.New, f, da, dispatch)
		}
	}

	if analyzeThis {
		report := da.EndAnalysis(oldElement, newElement)
		dispatch(report)
	}
}
