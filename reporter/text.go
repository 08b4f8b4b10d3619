package reporter

import (
	"fmt"
	"io"

	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/config"
	"github.com/mkavanagh/revapi/message"
	"golang.org/x/text/language"
)

// TextReporter writes one line per difference to an io.Writer, the
// default Reporter cmd/revapi wires up. When a message.Bundle is
// supplied it renders a difference with no stored description by
// resolving its code against the bundle in the analysis locale;
// otherwise an undescribed difference renders as its bare code.
type TextReporter struct {
	w      io.Writer
	bundle *message.Bundle
	locale language.Tag
}

// NewTextReporter builds a TextReporter with no message bundle: every
// difference renders using whatever description its Check already
// attached.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

// WithBundle attaches a message.Bundle used to render differences whose
// Check left the description empty.
func (r *TextReporter) WithBundle(bundle *message.Bundle) *TextReporter {
	r.bundle = bundle
	return r
}

func (r *TextReporter) Initialize(cfg *config.Configuration) error {
	r.locale = cfg.Locale()
	return nil
}

func (r *TextReporter) Report(report *api.Report) {
	for _, d := range report.Differences {
		fmt.Fprintf(r.w, "%s\t%s\t%s\n", d.Code(), pairLabel(report), r.describe(d))
	}
}

func (r *TextReporter) Close() error { return nil }

func (r *TextReporter) describe(d *api.Difference) string {
	if desc := d.Description(); desc != "" {
		return desc
	}
	if r.bundle != nil {
		return r.bundle.Format(r.locale, d.Code())
	}
	return d.Code()
}

func pairLabel(report *api.Report) string {
	switch {
	case report.OldElement != nil && report.NewElement != nil:
		return report.OldElement.FullName()
	case report.OldElement != nil:
		return report.OldElement.FullName() + " (removed)"
	default:
		return report.NewElement.FullName() + " (added)"
	}
}

var _ Reporter = (*TextReporter)(nil)
