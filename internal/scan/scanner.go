// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package scan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/tfctl/cliwire/internal/diag"
	"github.com/tfctl/cliwire/internal/log"
	"github.com/tfctl/cliwire/internal/pathref"
)

var (
	// DefaultIndexFile is the file whose module reference is its directory.
	DefaultIndexFile = "init.go"

	// DefaultAttachMethods name the calls that wire a command by hand.
	DefaultAttachMethods = []string{"Attach", "AddCommand"}

	// DefaultViewsetBases are the embedded types that make a struct a viewset.
	DefaultViewsetBases = []string{"viewset.Base", "viewset.Abstract"}
)

// Record is the scan result of one source file.
type Record struct {
	Module   string   `json:"module" yaml:"module"`
	Path     string   `json:"path" yaml:"path"`
	Size     int64    `json:"size" yaml:"size"`
	Declared []string `json:"declared" yaml:"declared"`
	Excluded []string `json:"excluded" yaml:"excluded"`
}

// Options tune what the scanner recognizes. Zero values select the defaults.
type Options struct {
	IndexFile     string
	AttachMethods []string
	ViewsetBases  []string
	// Cache stores parse results through cacheutil keyed by file identity.
	Cache bool
}

// Scanner extracts declaration records from plugin source files. A Scanner
// holds no per-scan state and is safe for concurrent use.
type Scanner struct {
	index   string
	attach  mapset.Set[string]
	bases   mapset.Set[string]
	cache   bool
	version string
}

// New returns a Scanner for opts.
func New(opts Options) *Scanner {
	if opts.IndexFile == "" {
		opts.IndexFile = DefaultIndexFile
	}
	if len(opts.AttachMethods) == 0 {
		opts.AttachMethods = DefaultAttachMethods
	}
	if len(opts.ViewsetBases) == 0 {
		opts.ViewsetBases = DefaultViewsetBases
	}
	return &Scanner{
		index:   opts.IndexFile,
		attach:  mapset.NewSet(opts.AttachMethods...),
		bases:   mapset.NewSet(opts.ViewsetBases...),
		cache:   opts.Cache,
		version: fingerprint(opts),
	}
}

// IsSource reports whether name is a file the scanner reads.
func IsSource(name string) bool {
	return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
}

// ScanDir scans every source file directly inside dir, in name order. Module
// references are computed with strip removed from the front of each path.
// Unreadable files yield an empty record and a diagnostic; ScanDir only
// returns an error when dir itself cannot be listed.
func (s *Scanner) ScanDir(dir, strip string) ([]Record, diag.List, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var (
		records []Record
		diags   diag.List
	)
	for _, e := range entries {
		if e.IsDir() || !IsSource(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		rec, ds := s.ScanFile(path)
		rec.Module = s.ModuleFor(path, strip)
		records = append(records, rec)
		diags = append(diags, ds...)
	}
	return records, diags, nil
}

// ModuleFor returns the module reference of a source file: the directory for
// the index file, the extension-less path otherwise.
func (s *Scanner) ModuleFor(path, strip string) string {
	if filepath.Base(path) == s.index {
		return pathref.ModuleReference(filepath.Dir(path), strip)
	}
	return pathref.ModuleReference(pathref.TrimExt(path), strip)
}

// ScanFile extracts the declared and excluded names of one file. The Module
// field of the returned record is left empty.
func (s *Scanner) ScanFile(path string) (Record, diag.List) {
	rec := Record{Path: path, Declared: []string{}, Excluded: []string{}}

	info, err := os.Stat(path)
	if err != nil {
		return rec, diag.List{scanIOError(path, err)}
	}
	rec.Size = info.Size()

	if s.cache {
		if cached, ok := s.readCache(path, info); ok {
			cached.Path = path
			cached.Size = rec.Size
			return cached, nil
		}
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return rec, diag.List{scanIOError(path, err)}
	}

	var diags diag.List
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		d := diag.Warning(diag.CodeScanParse, "source has syntax errors; using partial parse", err)
		d.Path = path
		diags = append(diags, d)
		if f == nil {
			return rec, diags
		}
	}

	rec.Declared = s.declared(f)
	rec.Excluded = s.excluded(f)
	log.Tracef("scanned %s: declared=%v excluded=%v", path, rec.Declared, rec.Excluded)

	// Files with syntax errors are not cached so the warning repeats.
	if s.cache && len(diags) == 0 {
		s.writeCache(path, info, rec)
	}
	return rec, diags
}

// declared returns groups, then commands, then viewset expansions, each in
// source order and without duplicates.
func (s *Scanner) declared(f *ast.File) []string {
	var (
		groups, commands []string
		viewsets         []string
		exposed          = map[string][]string{}
	)

	classify := func(name string, ds []directive) {
		for _, d := range ds {
			switch d.Kind {
			case KindGroup:
				groups = append(groups, name)
			case KindCommand:
				commands = append(commands, name)
			case KindViewset:
				exposed[d.Args[0]] = append(exposed[d.Args[0]], name)
			}
		}
	}

	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				classify(d.Name.Name, directives(d.Doc))
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch sp := spec.(type) {
				case *ast.ValueSpec:
					doc := sp.Doc
					if doc == nil && !d.Lparen.IsValid() {
						doc = d.Doc
					}
					ds := directives(doc)
					for _, n := range sp.Names {
						classify(n.Name, ds)
					}
				case *ast.TypeSpec:
					if s.isViewset(sp) {
						viewsets = append(viewsets, sp.Name.Name)
					}
				}
			}
		}
	}

	names := append(groups, commands...)
	for _, vs := range viewsets {
		names = append(names, exposed[vs]...)
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "_" || !seen.Add(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// isViewset reports whether the type embeds one of the viewset bases.
func (s *Scanner) isViewset(ts *ast.TypeSpec) bool {
	st, ok := ts.Type.(*ast.StructType)
	if !ok || st.Fields == nil {
		return false
	}
	for _, field := range st.Fields.List {
		if len(field.Names) != 0 {
			continue
		}
		if s.bases.Contains(typeName(field.Type)) {
			return true
		}
	}
	return false
}

// excluded returns the sorted names wired by hand anywhere in the file.
func (s *Scanner) excluded(f *ast.File) []string {
	set := mapset.NewThreadUnsafeSet[string]()
	ast.Inspect(f, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || len(call.Args) == 0 {
			return true
		}
		switch fun := call.Fun.(type) {
		case *ast.SelectorExpr:
			if s.attach.Contains(fun.Sel.Name) {
				if name := identName(call.Args[0]); name != "" {
					set.Add(name)
				}
			}
		case *ast.Ident:
			if fun.Name != "append" || len(call.Args) < 2 {
				return true
			}
			if sel, ok := call.Args[0].(*ast.SelectorExpr); ok && sel.Sel.Name == "Commands" {
				for _, arg := range call.Args[1:] {
					if name := identName(arg); name != "" {
						set.Add(name)
					}
				}
			}
		}
		return true
	})

	out := set.ToSlice()
	sort.Strings(out)
	return out
}

// identName resolves NAME, NAME() and &NAME to NAME. Anything else, including
// qualified identifiers, yields "".
func identName(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.CallExpr:
		if id, ok := x.Fun.(*ast.Ident); ok {
			return id.Name
		}
	case *ast.UnaryExpr:
		if x.Op == token.AND {
			return identName(x.X)
		}
	case *ast.ParenExpr:
		return identName(x.X)
	}
	return ""
}

// typeName renders an embedded field type as "pkg.Name" or "Name".
func typeName(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.StarExpr:
		return typeName(x.X)
	case *ast.Ident:
		return x.Name
	case *ast.SelectorExpr:
		if pkg, ok := x.X.(*ast.Ident); ok {
			return pkg.Name + "." + x.Sel.Name
		}
	}
	return ""
}

func scanIOError(path string, err error) diag.Diagnostic {
	d := diag.Warning(diag.CodeScanIO, "failed to read source file", err)
	d.Path = path
	return d
}

// fingerprint identifies the options that change a scan result.
func fingerprint(opts Options) string {
	attach := append([]string(nil), opts.AttachMethods...)
	bases := append([]string(nil), opts.ViewsetBases...)
	sort.Strings(attach)
	sort.Strings(bases)
	return strings.Join(attach, ",") + "|" + strings.Join(bases, ",")
}
