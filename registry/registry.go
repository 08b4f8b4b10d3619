// Package registry implements ExtensionRegistry, the seam spec.md's
// Design Notes describe for locating Checks, Transforms, Reporters and
// Analyzers by name instead of the core wiring them up directly.
package registry

import (
	"fmt"

	"github.com/mkavanagh/revapi/analyzer"
	"github.com/mkavanagh/revapi/check"
	"github.com/mkavanagh/revapi/reporter"
	"github.com/mkavanagh/revapi/transform"
)

// ExtensionRegistry resolves the four extension kinds the core consumes
// by name (a name listed in a Configuration property such as
// "additionalChecks", or one given with cmd/revapi's --check-plugin
// flag). It is one way to obtain extensions; revapi.Builder also accepts
// extension instances directly.
type ExtensionRegistry interface {
	Check(name string) (check.Check, error)
	Transform(name string) (transform.Transform, error)
	Reporter(name string) (reporter.Reporter, error)
	Analyzer(name string) (analyzer.Analyzer, error)
}

// CheckFactory, TransformFactory, ReporterFactory and AnalyzerFactory
// each produce a fresh instance of their extension on every call, so two
// pipeline entries naming the same extension never share state.
type (
	CheckFactory     func() check.Check
	TransformFactory func() transform.Transform
	ReporterFactory  func() reporter.Reporter
	AnalyzerFactory  func() analyzer.Analyzer
)

// StaticRegistry is the compiled-in ExtensionRegistry: every extension it
// can produce was registered by an init() or main() call, not discovered
// at runtime.
type StaticRegistry struct {
	checks     map[string]CheckFactory
	transforms map[string]TransformFactory
	reporters  map[string]ReporterFactory
	analyzers  map[string]AnalyzerFactory
}

// NewStaticRegistry builds an empty StaticRegistry; extensions are added
// with RegisterCheck and friends before it is first queried.
func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{
		checks:     make(map[string]CheckFactory),
		transforms: make(map[string]TransformFactory),
		reporters:  make(map[string]ReporterFactory),
		analyzers:  make(map[string]AnalyzerFactory),
	}
}

func (r *StaticRegistry) RegisterCheck(name string, f CheckFactory) { r.checks[name] = f }

func (r *StaticRegistry) RegisterTransform(name string, f TransformFactory) {
	r.transforms[name] = f
}

func (r *StaticRegistry) RegisterReporter(name string, f ReporterFactory) { r.reporters[name] = f }

func (r *StaticRegistry) RegisterAnalyzer(name string, f AnalyzerFactory) { r.analyzers[name] = f }

func (r *StaticRegistry) Check(name string) (check.Check, error) {
	f, ok := r.checks[name]
	if !ok {
		return nil, fmt.Errorf("registry: no check registered under %q", name)
	}
	return f(), nil
}

func (r *StaticRegistry) Transform(name string) (transform.Transform, error) {
	f, ok := r.transforms[name]
	if !ok {
		return nil, fmt.Errorf("registry: no transform registered under %q", name)
	}
	return f(), nil
}

func (r *StaticRegistry) Reporter(name string) (reporter.Reporter, error) {
	f, ok := r.reporters[name]
	if !ok {
		return nil, fmt.Errorf("registry: no reporter registered under %q", name)
	}
	return f(), nil
}

func (r *StaticRegistry) Analyzer(name string) (analyzer.Analyzer, error) {
	f, ok := r.analyzers[name]
	if !ok {
		return nil, fmt.Errorf("registry: no analyzer registered under %q", name)
	}
	return f(), nil
}

var _ ExtensionRegistry = (*StaticRegistry)(nil)

// Fallback chains two registries: names resolve against primary first,
// falling back to secondary. Used to layer a PluginRegistry over the
// built-in StaticRegistry without either needing to know about the
// other.
type Fallback struct {
	primary, secondary ExtensionRegistry
}

func NewFallback(primary, secondary ExtensionRegistry) *Fallback {
	return &Fallback{primary: primary, secondary: secondary}
}

func (f *Fallback) Check(name string) (check.Check, error) {
	if c, err := f.primary.Check(name); err == nil {
		return c, nil
	}
	return f.secondary.Check(name)
}

func (f *Fallback) Transform(name string) (transform.Transform, error) {
	if t, err := f.primary.Transform(name); err == nil {
		return t, nil
	}
	return f.secondary.Transform(name)
}

func (f *Fallback) Reporter(name string) (reporter.Reporter, error) {
	if r, err := f.primary.Reporter(name); err == nil {
		return r, nil
	}
	return f.secondary.Reporter(name)
}

func (f *Fallback) Analyzer(name string) (analyzer.Analyzer, error) {
	if a, err := f.primary.Analyzer(name); err == nil {
		return a, nil
	}
	return f.secondary.Analyzer(name)
}

var _ ExtensionRegistry = (*Fallback)(nil)
