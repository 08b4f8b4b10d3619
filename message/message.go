// Package message resolves a Difference's stable code and locale into a
// human-readable string, the external "message bundle" seam spec.md's
// Design Notes describe: the core never formats messages itself, it
// only ever stores a code and, optionally, a template string.
package message

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Bundle resolves (code, locale, args) to a formatted string. It wraps
// x/text/message.Printer, keyed per locale, the way a CLI resolves its
// own diagnostics locale in cue-lang-cue/cmd/cue/cmd/common.go.
type Bundle struct {
	templates map[string]string
	printers  map[language.Tag]*message.Printer
}

// New builds a Bundle over a fixed code -> printf-style template map.
// A code with no registered template falls back to the code itself.
func New(templates map[string]string) *Bundle {
	b := &Bundle{
		templates: make(map[string]string, len(templates)),
		printers:  make(map[language.Tag]*message.Printer),
	}
	for k, v := range templates {
		b.templates[k] = v
	}
	return b
}

// Format renders code under locale with args substituted into its
// template. An unregistered code renders as the code itself, since a
// Difference's code, not its message, is the stable identity tooling
// filters on.
func (b *Bundle) Format(locale language.Tag, code string, args ...interface{}) string {
	tmpl, ok := b.templates[code]
	if !ok {
		return code
	}
	p := b.printerFor(locale)
	return p.Sprintf(tmpl, args...)
}

func (b *Bundle) printerFor(locale language.Tag) *message.Printer {
	if p, ok := b.printers[locale]; ok {
		return p
	}
	p := message.NewPrinter(locale)
	b.printers[locale] = p
	return p
}

// LocaleFromEnvironment reads LC_ALL, falling back to LANG, the way
// cue's CLI resolves its own diagnostics locale. It returns
// language.Und, not an error, when neither is set or parseable.
func LocaleFromEnvironment() language.Tag {
	loc := os.Getenv("LC_ALL")
	if loc == "" {
		loc = os.Getenv("LANG")
	}
	loc = strings.Split(loc, ".")[0]
	tag, err := language.Parse(loc)
	if err != nil {
		return language.Und
	}
	return tag
}
