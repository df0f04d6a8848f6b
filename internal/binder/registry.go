// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package binder

import (
	"fmt"
	"sort"
	"sync"

	"github.com/urfave/cli/v3"
)

type (
	// Factory produces the command or group bound to a symbol.
	Factory func() (*cli.Command, error)

	// Symbols maps symbol names to factories.
	Symbols map[string]Factory

	// Loader builds the symbol table of a module the first time one of its
	// symbols is bound. A Loader error fails every binding of the module.
	Loader func() (Symbols, error)
)

// Registry is the lookup table of plugin modules. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]*module
}

type module struct {
	static  Symbols
	loaders []Loader

	once   sync.Once
	loaded Symbols
	err    error
}

// Default is the process-wide registry plugin packages register into.
var Default = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: map[string]*module{}}
}

// Register adds a lazy loader for module ref. Several loaders may be
// registered for one module; their symbols are merged in registration order.
func (r *Registry) Register(ref string, load Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.module(ref)
	m.loaders = append(m.loaders, load)
}

// Provide registers a single symbol of module ref.
func (r *Registry) Provide(ref, name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.module(ref).static[name] = f
}

// ProvideCommand registers a ready-made command as symbol name of module ref.
func (r *Registry) ProvideCommand(ref, name string, cmd *cli.Command) {
	r.Provide(ref, name, func() (*cli.Command, error) { return cmd, nil })
}

// Modules returns the registered module references, sorted.
func (r *Registry) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	refs := make([]string, 0, len(r.modules))
	for ref := range r.modules {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// module returns the entry for ref, creating it. Callers hold r.mu.
func (r *Registry) module(ref string) *module {
	m, ok := r.modules[ref]
	if !ok {
		m = &module{static: Symbols{}}
		r.modules[ref] = m
	}
	return m
}

// lookup returns the loaded symbol table of ref.
func (r *Registry) lookup(ref string) (Symbols, error) {
	r.mu.RLock()
	m, ok := r.modules[ref]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	m.once.Do(func() {
		loaded := Symbols{}
		for name, f := range m.static {
			loaded[name] = f
		}
		for _, load := range m.loaders {
			syms, err := safeLoad(load)
			if err != nil {
				m.err = err
				return
			}
			for name, f := range syms {
				loaded[name] = f
			}
		}
		m.loaded = loaded
	})
	if m.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImportFailure, m.err)
	}
	return m.loaded, nil
}

// safeLoad runs a loader, turning a panic into an error.
func safeLoad(load Loader) (syms Symbols, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during module load: %v", r)
		}
	}()
	return load()
}

// Register adds a loader to the Default registry.
func Register(ref string, load Loader) { Default.Register(ref, load) }

// Provide adds a symbol to the Default registry.
func Provide(ref, name string, f Factory) { Default.Provide(ref, name, f) }

// ProvideCommand adds a ready-made command to the Default registry.
func ProvideCommand(ref, name string, cmd *cli.Command) { Default.ProvideCommand(ref, name, cmd) }
