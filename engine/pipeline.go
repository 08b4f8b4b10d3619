package engine

import (
	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/config"
	"github.com/mkavanagh/revapi/reporter"
	"github.com/mkavanagh/revapi/transform"
)

// Sink is the transform/report pipeline a Traverse call dispatches
// reports to: a non-empty report is run through the transform chain,
// and, if anything survives, delivered to every reporter. An empty
// report - whether it arrived empty or was transformed down to nothing -
// is dropped without ever reaching a Reporter.
type Sink struct {
	transforms *transform.Pipeline
	reporters  *reporter.Multi
}

// NewSink builds a Sink over an already-constructed transform pipeline
// and reporter fan-out.
func NewSink(transforms *transform.Pipeline, reporters *reporter.Multi) *Sink {
	return &Sink{transforms: transforms, reporters: reporters}
}

// InitializeTransforms initializes the transform chain. Callers must run
// this before the first Dispatch call, alongside initializing the
// reporters this Sink fans out to.
func (s *Sink) InitializeTransforms(cfg *config.Configuration) error {
	return s.transforms.Initialize(cfg)
}

// Dispatch implements the Dispatch func signature Traverse expects.
func (s *Sink) Dispatch(report *api.Report) {
	if report.IsEmpty() {
		return
	}
	transformed := s.transforms.Apply(report)
	if transformed.IsEmpty() {
		return
	}
	s.reporters.Report(transformed)
}
