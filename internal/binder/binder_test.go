// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package binder

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/cliwire/internal/diag"
)

func command(name string) Factory {
	return func() (*cli.Command, error) { return &cli.Command{Name: name}, nil }
}

func TestBind(t *testing.T) {
	r := NewRegistry()
	r.Provide("plugins.a.groups", "C1", command("c1"))
	r.Provide("plugins.a.groups", "Nil", nil)
	r.Provide("plugins.a.groups", "Empty", func() (*cli.Command, error) { return nil, nil })
	r.Provide("plugins.a.groups", "Fails", func() (*cli.Command, error) { return nil, errors.New("boom") })
	r.Provide("plugins.a.groups", "Panics", func() (*cli.Command, error) { panic("kaboom") })
	r.Register("plugins.a.groups.broken", func() (Symbols, error) { return nil, errors.New("bad init") })

	tests := []struct {
		name    string
		ref     string
		symbol  string
		want    string
		wantErr error
	}{
		{"found", "plugins.a.groups", "C1", "c1", nil},
		{"unknown module", "plugins.missing", "C1", "", ErrNotFound},
		{"unknown symbol", "plugins.a.groups", "Nope", "", ErrAttributeMissing},
		{"nil factory", "plugins.a.groups", "Nil", "", ErrAttributeMissing},
		{"nil command", "plugins.a.groups", "Empty", "", ErrAttributeMissing},
		{"factory error", "plugins.a.groups", "Fails", "", ErrImportFailure},
		{"factory panic", "plugins.a.groups", "Panics", "", ErrImportFailure},
		{"loader error", "plugins.a.groups.broken", "X", "", ErrImportFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := r.Bind(tt.ref, tt.symbol)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				var be *BindError
				require.ErrorAs(t, err, &be)
				assert.Equal(t, tt.ref, be.Module)
				assert.Equal(t, tt.symbol, be.Symbol)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.Name)
		})
	}
}

func TestLoaderRunsOnce(t *testing.T) {
	r := NewRegistry()
	var calls atomic.Int32
	r.Register("plugins.lazy", func() (Symbols, error) {
		calls.Add(1)
		return Symbols{"A": command("a"), "B": command("b")}, nil
	})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Bind("plugins.lazy", "A")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	_, err := r.Bind("plugins.lazy", "B")
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestLoaderPanic(t *testing.T) {
	r := NewRegistry()
	r.Register("plugins.p", func() (Symbols, error) { panic("init exploded") })

	_, err := r.Bind("plugins.p", "A")
	assert.ErrorIs(t, err, ErrImportFailure)
	assert.Contains(t, err.Error(), "init exploded")
}

func TestLoaderMergesWithProvided(t *testing.T) {
	r := NewRegistry()
	r.Provide("plugins.m", "A", command("static"))
	r.Register("plugins.m", func() (Symbols, error) {
		return Symbols{"A": command("loaded"), "B": command("b")}, nil
	})

	a, err := r.Bind("plugins.m", "A")
	require.NoError(t, err)
	assert.Equal(t, "loaded", a.Name)

	b, err := r.Bind("plugins.m", "B")
	require.NoError(t, err)
	assert.Equal(t, "b", b.Name)
}

func TestModules(t *testing.T) {
	r := NewRegistry()
	r.ProvideCommand("b", "X", &cli.Command{Name: "x"})
	r.ProvideCommand("a", "Y", &cli.Command{Name: "y"})
	assert.Equal(t, []string{"a", "b"}, r.Modules())
}

func TestAttach(t *testing.T) {
	r := NewRegistry()
	r.Provide("plugins.a.groups", "C1", command("c1"))
	parent := &cli.Command{Name: "root"}

	d := r.Attach(parent, "plugins.a.groups", "C1")
	assert.Equal(t, diag.SeverityInfo, d.Severity)
	assert.Equal(t, diag.CodeBound, d.Code)
	require.Len(t, parent.Commands, 1)
	assert.Equal(t, "c1", parent.Commands[0].Name)

	d = r.Attach(parent, "plugins.a.groups", "Nope")
	assert.Equal(t, diag.SeverityWarning, d.Severity)
	assert.Equal(t, diag.CodeSymbolMissing, d.Code)
	assert.Equal(t, "plugins.a.groups", d.Module)
	assert.Equal(t, "Nope", d.Symbol)
	assert.Len(t, parent.Commands, 1)
}

func TestDiagnose(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{&BindError{Module: "m", Symbol: "s", Err: ErrNotFound}, diag.CodeModuleNotFound},
		{&BindError{Module: "m", Symbol: "s", Err: ErrAttributeMissing}, diag.CodeSymbolMissing},
		{&BindError{Module: "m", Symbol: "s", Err: ErrImportFailure}, diag.CodeModuleLoadError},
		{errors.New("other"), diag.CodeModuleLoadError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, Diagnose(tt.err).Code)
		})
	}
}
