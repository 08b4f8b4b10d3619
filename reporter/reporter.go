// Package reporter defines Reporter, the terminal consumer of
// (transformed, non-empty) reports.
package reporter

import (
	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/config"
)

// Reporter is a terminal consumer of reports: its return value (there is
// none) is not fed back into the pipeline. A panic inside Report stops
// the current Analyzer's traversal and is recorded as that Analyzer's
// Result.Err by Revapi.Analyze; an error from Close is logged and not
// returned. Reporters should therefore self-handle recoverable problems
// (a disk-full condition writing one report should not necessarily lose
// every report that came before it).
type Reporter interface {
	// Initialize is called once, before any Report call, with the
	// analysis-wide configuration.
	Initialize(cfg *config.Configuration) error

	// Report delivers one non-empty report. The engine never calls
	// Report with an empty difference list.
	Report(report *api.Report)

	// Close is called once, after every Report call has completed,
	// win or lose, to let the Reporter flush and release resources.
	Close() error
}

// Multi fans a single stream of reports out to several Reporters, in
// registration order, matching the "every Reporter in registration
// order" delivery rule described for the top-level pipeline.
type Multi struct {
	reporters []Reporter
}

// NewMulti builds a Multi over the given reporters.
func NewMulti(reporters ...Reporter) *Multi {
	return &Multi{reporters: reporters}
}

func (m *Multi) Initialize(cfg *config.Configuration) error {
	for _, r := range m.reporters {
		if err := r.Initialize(cfg); err != nil {
			return err
		}
	}
	return nil
}

func (m *Multi) Report(report *api.Report) {
	if report.IsEmpty() {
		return
	}
	for _, r := range m.reporters {
		r.Report(report)
	}
}

func (m *Multi) Close() error {
	var first error
	for _, r := range m.reporters {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
