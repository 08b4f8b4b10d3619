package goapi

import (
	"go/token"

	"github.com/mkavanagh/revapi/logging"
	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
)

// Environment is the check.Environment a goapi-built tree hands to its
// Checks: the file set used to parse it, and, when the archives resolve
// to a real directory on disk, the type-checked package loaded through
// golang.org/x/tools/go/packages for checks that need more than syntax
// (e.g. resolving an embedded interface's method set). Pkg is nil when
// no on-disk directory could be determined - archives built from
// api.InMemoryArchive, most notably - and Checks must tolerate that.
type Environment struct {
	Fset       *token.FileSet
	Pkg        *packages.Package
	ModulePath string
}

// loadPackage best-effort type-checks the Go package rooted at dir. A
// failure here is never fatal to the analysis: it only means Checks
// relying on Pkg fall back to syntax-only information, so this logs at
// warn and returns a nil package rather than an error.
func loadPackage(dir string) *packages.Package {
	cfg := &packages.Config{
		Dir:  dir,
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		logging.Warn("goapi: loading package for type information", zap.String("dir", dir), zap.Error(err))
		return nil
	}
	if len(pkgs) == 0 || len(pkgs[0].Errors) > 0 {
		return nil
	}
	return pkgs[0]
}

// clearLoaderCache drops references to a loaded package's type
// information. Modeled directly on
// JavaElementDifferenceAnalyzer.forceClearCompilerCache: a best-effort
// resource release on DifferenceAnalyzer.Close that must never fail the
// analysis it is cleaning up after. It only drops references, so it has
// no failure path and returns nothing.
func clearLoaderCache(env *Environment) {
	if env == nil || env.Pkg == nil {
		return
	}
	env.Pkg.Syntax = nil
	env.Pkg.TypesInfo = nil
}
