// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package registrar

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/tfctl/cliwire/internal/binder"
	"github.com/tfctl/cliwire/internal/diag"
	"github.com/tfctl/cliwire/internal/log"
	"github.com/tfctl/cliwire/internal/pathref"
	"github.com/tfctl/cliwire/internal/scan"
)

// Options configure a Registrar. Zero values select the defaults of pathref,
// scan and binder.
type Options struct {
	Patterns []string
	Ignores  []string
	Scan     scan.Options
	Registry *binder.Registry
	// Verbose logs every diagnostic and reports successful bindings.
	Verbose bool
	// Workers bounds concurrent directory scans. Zero means GOMAXPROCS.
	Workers int
}

// Target is one symbol to bind. A nil Parent marks a planned target that is
// not attached anywhere.
type Target struct {
	Parent *cli.Command `json:"-" yaml:"-"`
	Module string       `json:"module" yaml:"module"`
	Symbol string       `json:"symbol" yaml:"symbol"`
}

// Plan is the outcome of discovery without binding.
type Plan struct {
	Records     []scan.Record `json:"records" yaml:"records"`
	Targets     []Target      `json:"targets" yaml:"targets"`
	Diagnostics diag.List     `json:"diagnostics" yaml:"diagnostics"`
}

// Registrar drives discovery and binding.
type Registrar struct {
	opts     Options
	scanner  *scan.Scanner
	registry *binder.Registry
}

// New returns a Registrar for opts.
func New(opts Options) *Registrar {
	if opts.Registry == nil {
		opts.Registry = binder.Default
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Registrar{
		opts:     opts,
		scanner:  scan.New(opts.Scan),
		registry: opts.Registry,
	}
}

// Load attaches to parent every command discovered at path. A directory is
// searched for candidate directories; a regular file selects its own
// directory as the only candidate. Anything else yields one invalid_path
// diagnostic.
func (r *Registrar) Load(parent *cli.Command, path string) diag.List {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return r.finish(diag.List{invalidPath(path, err)})
	case info.IsDir():
		return r.LoadFromDirectory(parent, path)
	case info.Mode().IsRegular():
		abs, err := filepath.Abs(filepath.Dir(path))
		if err != nil {
			return r.finish(diag.List{invalidPath(path, err)})
		}
		return r.LoadFromPath(parent, abs, filepath.Dir(abs))
	default:
		return r.finish(diag.List{invalidPath(path, fmt.Errorf("not a regular file or directory"))})
	}
}

// LoadFromDirectory loads every candidate directory below root. Module
// references are computed relative to the parent of root, so they start with
// root's base name wherever the process runs.
func (r *Registrar) LoadFromDirectory(parent *cli.Command, root string) diag.List {
	plan := r.plan(parent, root)
	return r.finish(r.bind(plan.Targets, plan.Diagnostics))
}

// LoadFromPath loads the single candidate directory dir, removing strip from
// the front of every module reference.
func (r *Registrar) LoadFromPath(parent *cli.Command, dir, strip string) diag.List {
	records, diags, err := r.scanner.ScanDir(dir, strip)
	if err != nil {
		return r.finish(diag.List{scanError(dir, err)})
	}
	return r.finish(r.bind(targets(parent, records), diags))
}

// Plan runs discovery below root without binding anything.
func (r *Registrar) Plan(root string) Plan {
	return r.plan(nil, root)
}

func (r *Registrar) plan(parent *cli.Command, root string) Plan {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Plan{Diagnostics: diag.List{invalidPath(root, err)}}
	}
	strip := filepath.Dir(abs)

	dirs, err := pathref.CandidateDirs(abs, r.opts.Patterns, r.opts.Ignores)
	if err != nil {
		return Plan{Diagnostics: diag.List{scanError(abs, err)}}
	}
	log.Debugf("candidate directories below %s: %v", abs, dirs)

	type result struct {
		records []scan.Record
		diags   diag.List
	}
	results := make([]result, len(dirs))

	var g errgroup.Group
	g.SetLimit(r.opts.Workers)
	for i, dir := range dirs {
		g.Go(func() error {
			records, diags, err := r.scanner.ScanDir(dir, strip)
			if err != nil {
				diags = append(diags, scanError(dir, err))
			}
			results[i] = result{records: records, diags: diags}
			return nil
		})
	}
	_ = g.Wait()

	var plan Plan
	for _, res := range results {
		plan.Records = append(plan.Records, res.records...)
		plan.Targets = append(plan.Targets, targets(parent, res.records)...)
		plan.Diagnostics = append(plan.Diagnostics, res.diags...)
	}
	return plan
}

// targets returns the declared names of one directory's records minus the
// union of their exclusions.
func targets(parent *cli.Command, records []scan.Record) []Target {
	excluded := mapset.NewThreadUnsafeSet[string]()
	for _, rec := range records {
		excluded.Append(rec.Excluded...)
	}

	var out []Target
	for _, rec := range records {
		for _, name := range rec.Declared {
			if excluded.Contains(name) {
				log.Tracef("skipping %s.%s: wired explicitly", rec.Module, name)
				continue
			}
			out = append(out, Target{Parent: parent, Module: rec.Module, Symbol: name})
		}
	}
	return out
}

// bind attaches every target in order and appends the outcomes to diags.
func (r *Registrar) bind(ts []Target, diags diag.List) diag.List {
	for _, t := range ts {
		d := r.registry.Attach(t.Parent, t.Module, t.Symbol)
		if d.Severity == diag.SeverityInfo && !r.opts.Verbose {
			continue
		}
		diags = append(diags, d)
	}
	return diags
}

func (r *Registrar) finish(diags diag.List) diag.List {
	if r.opts.Verbose {
		diags.Emit()
	}
	return diags
}

// Group returns a new group named name holding the commands discovered at
// path. Unlike Load, a path that does not exist is an error.
func (r *Registrar) Group(name, usage, path string) (*cli.Command, diag.List, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("argument must be a valid path, %q is not: %w", path, err)
	}
	group := &cli.Command{Name: name, Usage: usage}
	return group, r.Load(group, path), nil
}

func invalidPath(path string, err error) diag.Diagnostic {
	d := diag.Warning(diag.CodeInvalidPath, "load target is neither a file nor a directory", err)
	d.Path = path
	return d
}

func scanError(path string, err error) diag.Diagnostic {
	d := diag.Warning(diag.CodeScanIO, "failed to scan directory", err)
	d.Path = path
	return d
}
