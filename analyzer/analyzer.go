// Package analyzer defines the Analyzer and DifferenceAnalyzer
// contracts. An Analyzer turns a pair of archive sets into two ordered
// Element trees and a matching DifferenceAnalyzer; a DifferenceAnalyzer
// is the stateful visitor the traversal in package engine drives across
// those trees. The default DifferenceAnalyzer implementation, which
// multiplexes over a set of Checks, lives in this package too.
package analyzer

import (
	"context"

	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/config"
)

// Analyzer produces the two API trees for one analysis pass and the
// DifferenceAnalyzer that will visit pairs drawn from them. The core
// treats concrete Analyzers (which do the actual archive parsing) as
// external collaborators; package goapi supplies one for Go source.
type Analyzer interface {
	// Initialize is called once, before any Analyze call, with the
	// analysis-wide configuration.
	Initialize(cfg *config.Configuration) error

	// Analyze builds both trees for the given APIs and returns a Result
	// carrying their roots and a DifferenceAnalyzer parameterized by
	// both. An error here is an Analyzer failure per the error-handling
	// design: it surfaces from the top-level Analyze call and aborts
	// only this Analyzer's contribution, not the whole run.
	Analyze(ctx context.Context, oldAPI, newAPI *api.API) (*Result, error)
}

// Result is what one Analyzer contributes to a run: the roots of both
// trees, already in the trees' total order, and the DifferenceAnalyzer
// that should visit pairs drawn from them.
type Result struct {
	OldRoots           []api.Element
	NewRoots           []api.Element
	DifferenceAnalyzer DifferenceAnalyzer
}

// DifferenceAnalyzer is a stateful visitor of element pairs. Revapi.Analyze
// (package revapi) calls Open once before the traversal starts and Close
// once after it ends - on every exit path, including one triggered by a
// Check failure elsewhere in the run. In between, the traversal in
// package engine calls BeginAnalysis/EndAnalysis once per visited pair
// (always paired, always LIFO-nested with respect to descendants).
type DifferenceAnalyzer interface {
	// Open acquires whatever per-analysis resources this
	// DifferenceAnalyzer needs before traversal starts.
	Open() error

	// Close releases those resources. The engine guarantees Close runs
	// exactly once for every successful Open, even if the traversal
	// that ran in between failed.
	Close() error

	// BeginAnalysis is called when the traversal opens a pair. Either
	// element may be nil.
	BeginAnalysis(oldElement, newElement api.Element)

	// EndAnalysis is called when the traversal closes a pair, after
	// every descendant pair's EndAnalysis has already run. It returns
	// the Report for this pair.
	EndAnalysis(oldElement, newElement api.Element) *api.Report
}
