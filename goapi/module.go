// Package goapi is the reference Analyzer for Go source: it turns a set
// of archives holding Go source files into api.Element trees and
// supplies a starter catalog of Checks (package goapi/checks) that
// exercise them. It is not part of the core; nothing in package engine,
// analyzer, check, transform, or reporter imports it.
package goapi

import (
	"context"
	"fmt"
	"io"

	"github.com/mkavanagh/revapi/api"
	"golang.org/x/mod/modfile"
)

// ResolveModule reads archive as a go.mod file and returns its module
// path, the way inspector/repository resolves a project's module
// identity in the teacher. The goapi Analyzer calls this for a primary
// archive whose name ends in "go.mod" and records the result as
// Environment.ModulePath; it does not move archives between the primary
// and supplementary sets, which the caller fixes when it builds the API.
func ResolveModule(ctx context.Context, archive api.Archive) (string, error) {
	r, err := archive.Open(ctx)
	if err != nil {
		return "", fmt.Errorf("goapi: opening %s: %w", archive.Name(), err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("goapi: reading %s: %w", archive.Name(), err)
	}

	f, err := modfile.Parse(archive.Name(), data, nil)
	if err != nil {
		return "", fmt.Errorf("goapi: parsing %s: %w", archive.Name(), err)
	}
	if f.Module == nil {
		return "", fmt.Errorf("goapi: %s has no module directive", archive.Name())
	}
	return f.Module.Mod.Path, nil
}
