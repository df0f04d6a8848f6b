// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package binder

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cliwire/internal/diag"
)

var (
	// ErrNotFound means no module is registered under the reference.
	ErrNotFound = errors.New("module not found")
	// ErrAttributeMissing means the module has no such symbol or the symbol
	// produced a nil command.
	ErrAttributeMissing = errors.New("symbol missing")
	// ErrImportFailure means loading the module or building the symbol
	// failed.
	ErrImportFailure = errors.New("module load failed")
)

// BindError reports why a symbol could not be bound. It matches its kind
// sentinel with errors.Is.
type BindError struct {
	Module string
	Symbol string
	Err    error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to bind %s from %s: %v", e.Symbol, e.Module, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// Bind resolves symbol of module ref to a non-nil command.
func (r *Registry) Bind(ref, symbol string) (*cli.Command, error) {
	syms, err := r.lookup(ref)
	if err != nil {
		return nil, &BindError{Module: ref, Symbol: symbol, Err: err}
	}

	f, ok := syms[symbol]
	if !ok || f == nil {
		return nil, &BindError{Module: ref, Symbol: symbol, Err: ErrAttributeMissing}
	}

	cmd, err := safeFactory(f)
	if err != nil {
		return nil, &BindError{Module: ref, Symbol: symbol, Err: fmt.Errorf("%w: %w", ErrImportFailure, err)}
	}
	if cmd == nil {
		return nil, &BindError{Module: ref, Symbol: symbol, Err: fmt.Errorf("%w: factory returned nil", ErrAttributeMissing)}
	}
	return cmd, nil
}

// Attach binds symbol of module ref and appends it to parent. The outcome is
// always reported as a diagnostic, never as an error: an info diagnostic on
// success, a warning when the symbol was skipped.
func (r *Registry) Attach(parent *cli.Command, ref, symbol string) diag.Diagnostic {
	cmd, err := r.Bind(ref, symbol)
	if err != nil {
		return Diagnose(err)
	}
	parent.Commands = append(parent.Commands, cmd)
	return diag.Diagnostic{
		Severity: diag.SeverityInfo,
		Code:     diag.CodeBound,
		Module:   ref,
		Symbol:   symbol,
		Message:  fmt.Sprintf("loaded and added command %q", cmd.Name),
	}
}

// Diagnose converts a bind error into a warning diagnostic.
func Diagnose(err error) diag.Diagnostic {
	code := diag.CodeModuleLoadError
	switch {
	case errors.Is(err, ErrNotFound):
		code = diag.CodeModuleNotFound
	case errors.Is(err, ErrAttributeMissing):
		code = diag.CodeSymbolMissing
	}

	d := diag.Warning(code, "failed to load", err)
	var be *BindError
	if errors.As(err, &be) {
		d.Module = be.Module
		d.Symbol = be.Symbol
		d.Cause = be.Err
	}
	return d
}

// safeFactory runs a factory, turning a panic into an error.
func safeFactory(f Factory) (cmd *cli.Command, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return f()
}
