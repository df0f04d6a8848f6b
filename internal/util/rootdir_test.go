// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRootDir(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) (spec string, wantDir string)
		wantNS  string
		wantErr error
	}{
		{
			name: "absolute path",
			setup: func(t *testing.T) (string, string) {
				d := t.TempDir()
				return d, d
			},
		},
		{
			name: "absolute path with namespace",
			setup: func(t *testing.T) (string, string) {
				d := t.TempDir()
				return d + "::work", d
			},
			wantNS: "work",
		},
		{
			name: "relative path with namespace",
			setup: func(t *testing.T) (string, string) {
				d := t.TempDir()
				require.NoError(t, os.Mkdir(filepath.Join(d, "plugins"), 0o755))
				t.Chdir(d)
				wd, err := os.Getwd()
				require.NoError(t, err)
				return "plugins::staging", filepath.Join(wd, "plugins")
			},
			wantNS: "staging",
		},
		{
			name: "dot",
			setup: func(t *testing.T) (string, string) {
				t.Chdir(t.TempDir())
				wd, err := os.Getwd()
				require.NoError(t, err)
				return ".", wd
			},
		},
		{
			name: "empty namespace",
			setup: func(t *testing.T) (string, string) {
				d := t.TempDir()
				return d + "::", d
			},
		},
		{
			name: "extra separators dropped",
			setup: func(t *testing.T) (string, string) {
				d := t.TempDir()
				return d + "::dev::extra", d
			},
			wantNS: "dev",
		},
		{
			name: "missing directory",
			setup: func(t *testing.T) (string, string) {
				return filepath.Join(t.TempDir(), "nope"), ""
			},
			wantErr: os.ErrNotExist,
		},
		{
			name: "file, not directory",
			setup: func(t *testing.T) (string, string) {
				f := filepath.Join(t.TempDir(), "file.txt")
				require.NoError(t, os.WriteFile(f, []byte("x"), 0o600))
				return f, ""
			},
			wantErr: os.ErrInvalid,
		},
		{
			name: "empty",
			setup: func(t *testing.T) (string, string) {
				return "", ""
			},
			wantErr: os.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, wantDir := tt.setup(t)

			dir, ns, err := ParseRootDir(spec)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, wantDir, dir)
			assert.Equal(t, tt.wantNS, ns)
		})
	}
}
