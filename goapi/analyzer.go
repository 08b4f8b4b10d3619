package goapi

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/mkavanagh/revapi/analyzer"
	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/check"
	"github.com/mkavanagh/revapi/config"
	"github.com/mkavanagh/revapi/goapi/checks"
	"github.com/mkavanagh/revapi/logging"
	"github.com/mkavanagh/revapi/registry"
	"go.uber.org/zap"
)

// Analyzer is the reference analyzer.Analyzer for Go source archives.
// It parses every archive whose name does not end in "go.mod" as a Go
// source file (adapting the two-pass ast walk in the teacher's
// inspector/golang.Inspector.InspectSource) and multiplexes the
// resulting trees over checks.DefaultCatalog through
// analyzer.DefaultDifferenceAnalyzer.
type Analyzer struct {
	cfg      *config.Configuration
	registry registry.ExtensionRegistry
}

// NewAnalyzer builds a goapi.Analyzer with only the built-in check
// catalog.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// WithRegistry attaches an ExtensionRegistry Checks named in the
// "additionalChecks" configuration property (comma-separated) are
// resolved against, in addition to the built-in catalog. This is how an
// externally-loaded registry.PluginRegistry check reaches this
// Analyzer's dispatch without the core needing to know plugins exist.
func (a *Analyzer) WithRegistry(r registry.ExtensionRegistry) *Analyzer {
	a.registry = r
	return a
}

func (a *Analyzer) Initialize(cfg *config.Configuration) error {
	a.cfg = cfg
	return nil
}

func (a *Analyzer) Analyze(ctx context.Context, oldAPI, newAPI *api.API) (*analyzer.Result, error) {
	oldRoots, oldEnv, err := buildTree(ctx, oldAPI)
	if err != nil {
		return nil, fmt.Errorf("goapi: building old tree: %w", err)
	}
	newRoots, newEnv, err := buildTree(ctx, newAPI)
	if err != nil {
		return nil, fmt.Errorf("goapi: building new tree: %w", err)
	}

	allChecks := append(checks.DefaultCatalog(), a.additionalChecks()...)
	da := analyzer.NewDefaultDifferenceAnalyzer(allChecks...)
	if err := da.Initialize(a.cfg, oldEnv, newEnv); err != nil {
		return nil, fmt.Errorf("goapi: initializing checks: %w", err)
	}

	return &analyzer.Result{
		OldRoots:           oldRoots,
		NewRoots:           newRoots,
		DifferenceAnalyzer: &differenceAnalyzer{DefaultDifferenceAnalyzer: da, oldEnv: oldEnv, newEnv: newEnv},
	}, nil
}

var _ analyzer.Analyzer = (*Analyzer)(nil)

// additionalChecks resolves every name listed in the "additionalChecks"
// configuration property against the registry, skipping (and logging at
// warn) any name the registry cannot resolve rather than failing the
// whole analysis over one bad plugin path.
func (a *Analyzer) additionalChecks() []check.Check {
	if a.registry == nil {
		return nil
	}
	names, _ := a.cfg.Get("additionalChecks")
	if names == "" {
		return nil
	}
	var out []check.Check
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c, err := a.registry.Check(name)
		if err != nil {
			logging.Warn("goapi: resolving additional check", zap.String("name", name), zap.Error(err))
			continue
		}
		out = append(out, c)
	}
	return out
}

// differenceAnalyzer wraps analyzer.DefaultDifferenceAnalyzer to add the
// forced, non-reraising loader cleanup described in SPEC_FULL.md's
// SUPPLEMENTED FEATURES: releasing go/packages type information a
// per-side Environment may be holding.
type differenceAnalyzer struct {
	*analyzer.DefaultDifferenceAnalyzer
	oldEnv, newEnv *Environment
}

func (d *differenceAnalyzer) Close() error {
	clearLoaderCache(d.oldEnv)
	clearLoaderCache(d.newEnv)
	return d.DefaultDifferenceAnalyzer.Close()
}

// parsedFile is one archive's parse result, held until the
// package-wide type pass has run across every file of its package.
type parsedFile struct {
	archive api.Archive
	file    *ast.File
	data    []byte
}

// buildTree parses every primary archive in a and returns its package
// elements, already sorted, plus the Environment those elements'
// Checks should resolve deeper type queries against.
//
// Types and methods are built in two package-wide passes, not two
// passes per file: a method declared in one file commonly has its
// receiver type declared in a different file of the same package (a
// type in server.go, its methods in start.go), so every file's type
// declarations must be collected before any file's receiver pass runs.
// A placeholder is only synthesized for a receiver whose base type is
// absent from the whole package, never just from the current file.
func buildTree(ctx context.Context, a *api.API) ([]api.Element, *Environment, error) {
	fset := token.NewFileSet()
	env := &Environment{Fset: fset}
	packagesByName := map[string]*Element{}
	classesByPackage := map[string]map[string]*Element{}
	filesByPackage := map[string][]parsedFile{}
	var order []string

	for _, archive := range a.Primary() {
		if strings.HasSuffix(archive.Name(), "go.mod") {
			if modulePath, err := ResolveModule(ctx, archive); err == nil {
				env.ModulePath = modulePath
			}
			continue
		}

		data, err := readArchive(ctx, archive)
		if err != nil {
			return nil, nil, err
		}
		file, err := parser.ParseFile(fset, archive.Name(), data, parser.ParseComments)
		if err != nil {
			return nil, nil, fmt.Errorf("goapi: parsing %s: %w", archive.Name(), err)
		}

		pkgName := file.Name.Name
		pkgElement, ok := packagesByName[pkgName]
		if !ok {
			base := api.NewBaseElement(a, archive, pkgName)
			pkgElement = NewElement(base, api.KindPackage)
			packagesByName[pkgName] = pkgElement
			classesByPackage[pkgName] = map[string]*Element{}
			order = append(order, pkgName)
		}
		filesByPackage[pkgName] = append(filesByPackage[pkgName], parsedFile{archive: archive, file: file, data: data})

		if env.Pkg == nil {
			if dir := filepath.Dir(archive.Name()); dir != "." {
				env.Pkg = loadPackage(dir)
			}
		}
	}

	for _, pkgName := range order {
		pkgElement := packagesByName[pkgName]
		classes := classesByPackage[pkgName]
		for _, pf := range filesByPackage[pkgName] {
			addTypeDecls(a, pf.archive, pf.file, pkgElement, classes)
		}
	}

	for _, pkgName := range order {
		pkgElement := packagesByName[pkgName]
		classes := classesByPackage[pkgName]
		for _, pf := range filesByPackage[pkgName] {
			addFuncDecls(a, pf.archive, fset, pf.file, pf.data, pkgElement, classes)
		}
	}

	sort.Strings(order)
	roots := make([]api.Element, 0, len(order))
	for _, name := range order {
		pkgElement := packagesByName[name]
		sortTree(pkgElement)
		roots = append(roots, pkgElement)
	}
	return roots, env, nil
}

// sortTree orders e's children, and their children, and so on, by
// CompareTo, satisfying the ordering invariant co-iteration relies on
// at every depth of the tree, not just the root.
func sortTree(e *Element) {
	e.SortChildren()
	for _, child := range e.Children() {
		if childElement, ok := child.(*Element); ok {
			sortTree(childElement)
		}
	}
}

func readArchive(ctx context.Context, archive api.Archive) ([]byte, error) {
	r, err := archive.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("goapi: opening %s: %w", archive.Name(), err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("goapi: reading %s: %w", archive.Name(), err)
	}
	return data, nil
}

// addTypeDecls adds every top-level exported type declared in file to
// pkgElement and records it in classes, which is shared across every
// file of the package so the later receiver pass can find it
// regardless of which file declared it.
func addTypeDecls(a *api.API, archive api.Archive, file *ast.File, pkgElement *Element, classes map[string]*Element) {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || !ts.Name.IsExported() {
				continue
			}
			base := api.NewBaseElement(a, archive, pkgElement.FullName()+"."+ts.Name.Name)
			classElement := NewElement(base, api.KindClass)
			applyTypeKind(classElement, ts.Type)

			if structType, ok := ts.Type.(*ast.StructType); ok && structType.Fields != nil {
				for _, field := range structType.Fields.List {
					addFields(a, archive, classElement, field)
				}
			}

			classes[ts.Name.Name] = classElement
			AddChild(pkgElement, classElement)
		}
	}
}

// addFuncDecls adds every top-level exported function and method
// declared in file to pkgElement/classes. classes must already carry
// every type declared anywhere in the package (see buildTree), so a
// placeholder is only synthesized here for a receiver base type that
// genuinely has no exported declaration anywhere in the package.
func addFuncDecls(a *api.API, archive api.Archive, fset *token.FileSet, file *ast.File, src []byte, pkgElement *Element, classes map[string]*Element) {
	for _, decl := range file.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok || !funcDecl.Name.IsExported() {
			continue
		}
		if funcDecl.Recv == nil || len(funcDecl.Recv.List) == 0 {
			// A package-level function is modeled as a method owned by
			// the package element itself rather than by any class.
			addMethod(a, archive, fset, src, pkgElement, funcDecl, pkgElement.FullName())
			continue
		}
		recvType := extractBaseTypeName(exprToString(funcDecl.Recv.List[0].Type))
		classElement, ok := classes[recvType]
		if !ok {
			// Receiver for a type with no exported declaration anywhere
			// in the package (an unexported helper type extended with
			// exported methods); create a placeholder the way the
			// teacher's InspectSource does for the same situation.
			base := api.NewBaseElement(a, archive, pkgElement.FullName()+"."+recvType)
			classElement = NewElement(base, api.KindClass)
			classElement.SetGoKind(reflect.Struct)
			classes[recvType] = classElement
			AddChild(pkgElement, classElement)
		}
		addMethod(a, archive, fset, src, classElement, funcDecl, classElement.FullName())
	}
}

func applyTypeKind(e *Element, expr ast.Expr) {
	switch t := expr.(type) {
	case *ast.StructType:
		e.SetGoKind(reflect.Struct)
	case *ast.InterfaceType:
		e.SetGoKind(reflect.Interface)
	case *ast.ArrayType:
		e.SetGoKind(reflect.Slice)
		e.SetTypeString(exprToString(t.Elt))
	case *ast.MapType:
		e.SetGoKind(reflect.Map)
		e.SetTypeString(exprToString(t.Value))
	case *ast.Ident:
		e.SetGoKind(kindFromBasicType(t.Name))
	default:
		e.SetGoKind(reflect.Invalid)
	}
}

func addFields(a *api.API, archive api.Archive, classElement *Element, field *ast.Field) {
	typeStr := exprToString(field.Type)
	var tag reflect.StructTag
	if field.Tag != nil {
		tag = reflect.StructTag(strings.Trim(field.Tag.Value, "`"))
	}
	names := field.Names
	if len(names) == 0 {
		// Embedded field: name is the type itself.
		names = []*ast.Ident{{Name: extractBaseTypeName(typeStr)}}
	}
	for _, name := range names {
		if !name.IsExported() {
			continue
		}
		base := api.NewBaseElement(a, archive, classElement.FullName()+"."+name.Name)
		fieldElement := NewElement(base, api.KindField)
		fieldElement.SetTypeString(typeStr)
		fieldElement.SetTag(tag)
		AddChild(classElement, fieldElement)

		if tag != "" {
			annoBase := api.NewBaseElement(a, archive, fieldElement.FullName()+"#tag")
			annoElement := NewElement(annoBase, api.KindAnnotation)
			annoElement.SetTypeString(string(tag))
			AddChild(fieldElement, annoElement)
		}
	}
}

func addMethod(a *api.API, archive api.Archive, fset *token.FileSet, src []byte, owner *Element, funcDecl *ast.FuncDecl, ownerName string) {
	base := api.NewBaseElement(a, archive, ownerName+"."+funcDecl.Name.Name)
	methodElement := NewElement(base, api.KindMethod)
	methodElement.SetTypeString(signatureOf(funcDecl))

	start := fset.Position(funcDecl.Pos()).Offset
	end := fset.Position(funcDecl.End()).Offset
	if start >= 0 && end <= len(src) && start < end {
		if h, err := api.ContentHash(src[start:end]); err == nil {
			methodElement.SetContentHash(h, true)
		}
	}

	for _, param := range paramsOf(funcDecl) {
		paramBase := api.NewBaseElement(a, archive, methodElement.FullName()+"."+param.name)
		paramElement := NewElement(paramBase, api.KindParameter)
		paramElement.SetTypeString(param.typeString)
		AddChild(methodElement, paramElement)
	}

	AddChild(owner, methodElement)
}

type namedType struct {
	name       string
	typeString string
}

func paramsOf(funcDecl *ast.FuncDecl) []namedType {
	if funcDecl.Type.Params == nil {
		return nil
	}
	var out []namedType
	for i, field := range funcDecl.Type.Params.List {
		typeStr := exprToString(field.Type)
		if len(field.Names) == 0 {
			out = append(out, namedType{name: fmt.Sprintf("arg%d", i), typeString: typeStr})
			continue
		}
		for _, name := range field.Names {
			out = append(out, namedType{name: name.Name, typeString: typeStr})
		}
	}
	return out
}

func signatureOf(funcDecl *ast.FuncDecl) string {
	var b strings.Builder
	b.WriteString("(")
	for i, p := range paramsOf(funcDecl) {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.typeString)
	}
	b.WriteString(")")
	if funcDecl.Type.Results != nil {
		b.WriteString(" (")
		for i, field := range funcDecl.Type.Results.List {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(exprToString(field.Type))
		}
		b.WriteString(")")
	}
	return b.String()
}

// exprToString renders the subset of ast.Expr node types a Go API
// surface actually needs for signature comparison. It is not a general
// printer; anything it does not recognize renders as its Go type name,
// which is enough to notice a change without being able to describe it
// precisely.
func exprToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + exprToString(t.X)
	case *ast.SelectorExpr:
		return exprToString(t.X) + "." + t.Sel.Name
	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + exprToString(t.Elt)
		}
		return "[...]" + exprToString(t.Elt)
	case *ast.MapType:
		return "map[" + exprToString(t.Key) + "]" + exprToString(t.Value)
	case *ast.Ellipsis:
		return "..." + exprToString(t.Elt)
	case *ast.InterfaceType:
		return "interface{}"
	case *ast.FuncType:
		return "func(...)"
	case *ast.ChanType:
		return "chan " + exprToString(t.Value)
	case *ast.IndexExpr:
		// A single-parameter generic instantiation or receiver, e.g.
		// Box[T]. extractBaseTypeName strips the "[...]" suffix back
		// off for receiver matching.
		return exprToString(t.X) + "[" + exprToString(t.Index) + "]"
	case *ast.IndexListExpr:
		args := make([]string, len(t.Indices))
		for i, idx := range t.Indices {
			args[i] = exprToString(idx)
		}
		return exprToString(t.X) + "[" + strings.Join(args, ", ") + "]"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// extractBaseTypeName strips pointer and generic-instantiation
// decoration from a receiver or field type string, e.g. "*Foo[T]" ->
// "Foo", the way the teacher's ExtractBaseTypeName does.
func extractBaseTypeName(typeStr string) string {
	s := strings.TrimPrefix(typeStr, "*")
	if i := strings.Index(s, "["); i >= 0 {
		s = s[:i]
	}
	return s
}

func kindFromBasicType(name string) reflect.Kind {
	switch name {
	case "string":
		return reflect.String
	case "bool":
		return reflect.Bool
	case "int":
		return reflect.Int
	case "int8":
		return reflect.Int8
	case "int16":
		return reflect.Int16
	case "int32", "rune":
		return reflect.Int32
	case "int64":
		return reflect.Int64
	case "uint":
		return reflect.Uint
	case "uint8", "byte":
		return reflect.Uint8
	case "uint16":
		return reflect.Uint16
	case "uint32":
		return reflect.Uint32
	case "uint64":
		return reflect.Uint64
	case "float32":
		return reflect.Float32
	case "float64":
		return reflect.Float64
	default:
		return reflect.Struct
	}
}
