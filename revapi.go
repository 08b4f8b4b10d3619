// Package revapi is the top-level entry point: it wires a set of
// Analyzers (each of which brings its own Checks), Transforms, Reporters
// and ElementFilters into one Revapi value and drives a two-API
// comparison across all of them. Structurally this mirrors the original
// Revapi.java: a Builder assembles the extension set once, and Analyze
// runs every configured Analyzer's traversal in turn, collecting one
// Result per Analyzer.
package revapi

import (
	"context"
	"fmt"

	"github.com/mkavanagh/revapi/analyzer"
	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/check"
	"github.com/mkavanagh/revapi/config"
	"github.com/mkavanagh/revapi/engine"
	"github.com/mkavanagh/revapi/filter"
	"github.com/mkavanagh/revapi/logging"
	"github.com/mkavanagh/revapi/reporter"
	"github.com/mkavanagh/revapi/transform"
	"go.uber.org/zap"
)

// Revapi is an immutable, fully-wired analysis pipeline: a fixed set of
// Analyzers to run, a fixed transform chain, a fixed reporter fan-out,
// and a fixed filter conjunction, all built once by Builder.
type Revapi struct {
	analyzers []analyzer.Analyzer
	filter    filter.ElementFilter
	sink      *engine.Sink
	reporters *reporter.Multi
}

// Builder assembles a Revapi, mirroring Revapi.Builder's
// withAnalyzers/withReporters/withTransforms/withFilters chain.
type Builder struct {
	analyzers  []analyzer.Analyzer
	checks     []check.Check
	transforms []transform.Transform
	reporters  []reporter.Reporter
	filters    []filter.ElementFilter
}

// NewBuilder starts an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithAnalyzers registers Analyzers, in the order their trees should be
// compared.
func (b *Builder) WithAnalyzers(analyzers ...analyzer.Analyzer) *Builder {
	b.analyzers = append(b.analyzers, analyzers...)
	return b
}

// WithTransforms registers Transforms, in the order they run.
func (b *Builder) WithTransforms(transforms ...transform.Transform) *Builder {
	b.transforms = append(b.transforms, transforms...)
	return b
}

// WithReporters registers Reporters, in the order they are delivered
// to.
func (b *Builder) WithReporters(reporters ...reporter.Reporter) *Builder {
	b.reporters = append(b.reporters, reporters...)
	return b
}

// WithFilters registers ElementFilters, combined conjunctively.
func (b *Builder) WithFilters(filters ...filter.ElementFilter) *Builder {
	b.filters = append(b.filters, filters...)
	return b
}

// Build finalizes the Revapi. It does not itself run Initialize on any
// extension; that happens once, inside Analyze, once a Configuration is
// available.
func (b *Builder) Build() *Revapi {
	transforms := transform.NewPipeline(b.transforms...)
	reporters := reporter.NewMulti(b.reporters...)
	return &Revapi{
		analyzers: b.analyzers,
		filter:    filter.Compose(b.filters...),
		sink:      engine.NewSink(transforms, reporters),
		reporters: reporters,
	}
}

// Result is the outcome of running one Analyzer's comparison: the
// Analyzer's registration index and any error it produced. The
// Analyzer's reports are not kept here; they have already gone through
// the transform chain to every Reporter. Per spec.md §7, an error from
// one Analyzer aborts only that Analyzer's contribution.
type Result struct {
	AnalyzerIndex int
	Err           error
}

// Analyze initializes reporters, then every registered Analyzer, then
// the transform chain, then runs each Analyzer's comparison between
// oldAPI and newAPI, returning one Result per Analyzer in registration
// order - the same init ordering Revapi.java's analyze() uses:
// initReporters(); initAnalyzers(); initProblemFilters() (problem
// filters are this design's transforms). It always closes every
// DifferenceAnalyzer it opened, even for an Analyzer whose traversal
// panicked, converting the panic into that Analyzer's Result.Err
// instead of letting it escape - mirroring how Revapi.java's analyze()
// guarantees each Tree's resources are released regardless of how an
// individual element comparison failed.
func (r *Revapi) Analyze(ctx context.Context, cfg *config.Configuration, oldAPI, newAPI *api.API) ([]Result, error) {
	if err := r.reporters.Initialize(cfg); err != nil {
		return nil, fmt.Errorf("revapi: initializing reporters: %w", err)
	}
	defer func() {
		if err := r.reporters.Close(); err != nil {
			logging.Error("revapi: closing reporters", zap.Error(err))
		}
	}()

	initErrs := make([]error, len(r.analyzers))
	for i, a := range r.analyzers {
		if err := a.Initialize(cfg); err != nil {
			initErrs[i] = fmt.Errorf("initializing analyzer: %w", err)
		}
	}

	if err := r.sink.InitializeTransforms(cfg); err != nil {
		return nil, fmt.Errorf("revapi: initializing transforms: %w", err)
	}

	results := make([]Result, len(r.analyzers))
	for i, a := range r.analyzers {
		if initErrs[i] != nil {
			results[i] = Result{AnalyzerIndex: i, Err: initErrs[i]}
		} else {
			results[i] = Result{AnalyzerIndex: i, Err: r.runOne(ctx, a, oldAPI, newAPI)}
		}
		if results[i].Err != nil {
			logging.Error("revapi: analyzer failed", zap.Int("analyzer", i), zap.Error(results[i].Err))
		}
	}
	return results, nil
}

func (r *Revapi) runOne(ctx context.Context, a analyzer.Analyzer, oldAPI, newAPI *api.API) (err error) {
	result, analyzeErr := a.Analyze(ctx, oldAPI, newAPI)
	if analyzeErr != nil {
		return fmt.Errorf("analyzing: %w", analyzeErr)
	}

	if openErr := result.DifferenceAnalyzer.Open(); openErr != nil {
		return fmt.Errorf("opening difference analyzer: %w", openErr)
	}
	defer func() {
		if closeErr := result.DifferenceAnalyzer.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing difference analyzer: %w", closeErr)
		}
	}()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("check or transform panicked: %v", rec)
		}
	}()

	engine.Traverse(result.OldRoots, result.NewRoots, r.filter, result.DifferenceAnalyzer, r.sink.Dispatch)
	return nil
}
