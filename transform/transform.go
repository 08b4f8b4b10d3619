// Package transform implements the pipeline that rewrites or drops
// Differences after a Check has raised them and before a Reporter sees
// them.
package transform

import (
	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/config"
)

// Transform rewrites or drops individual differences based on the pair
// they were raised against. Transforms must be pure with respect to the
// engine: Apply may not mutate oldElement, newElement, or difference -
// it returns a replacement instead.
type Transform interface {
	// Initialize is called once, before any Apply call, with the
	// analysis-wide configuration.
	Initialize(cfg *config.Configuration) error

	// Apply is called once per difference in a non-empty report. A nil
	// return drops the difference; a non-nil return, which may be the
	// same value that was passed in, replaces it.
	Apply(oldElement, newElement api.Element, difference *api.Difference) *api.Difference
}

// Pipeline applies a fixed, ordered chain of Transforms to a report:
// for each difference, transform 1 runs first and its output feeds
// transform 2, and so on. A difference dropped partway through the
// chain is simply not passed to the remaining transforms.
type Pipeline struct {
	transforms []Transform
}

// NewPipeline builds a Pipeline that applies transforms in the given
// order, matching their registration order.
func NewPipeline(transforms ...Transform) *Pipeline {
	return &Pipeline{transforms: transforms}
}

// Initialize initializes every transform in the pipeline, in order,
// stopping and returning the first error encountered.
func (p *Pipeline) Initialize(cfg *config.Configuration) error {
	for _, t := range p.transforms {
		if err := t.Initialize(cfg); err != nil {
			return err
		}
	}
	return nil
}

// Apply runs report's differences through the full transform chain and
// returns the surviving, possibly-rewritten differences. The original
// report is not modified.
func (p *Pipeline) Apply(report *api.Report) *api.Report {
	if report.IsEmpty() {
		return report
	}
	out := make([]*api.Difference, 0, len(report.Differences))
	for _, d := range report.Differences {
		current := d
		for _, t := range p.transforms {
			if current == nil {
				break
			}
			current = t.Apply(report.OldElement, report.NewElement, current)
		}
		if current != nil {
			out = append(out, current)
		}
	}
	return &api.Report{OldElement: report.OldElement, NewElement: report.NewElement, Differences: out}
}
