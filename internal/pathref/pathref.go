// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pathref

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Delimiter joins the components of a module reference.
const Delimiter = "."

var (
	// DefaultPatterns select candidate directories by base name.
	DefaultPatterns = []string{"groups"}

	// DefaultIgnores reject candidate directories by their path below the
	// plugin root.
	DefaultIgnores = []string{".git", "vendor", ".cache"}
)

// Normalize turns a path into a module reference: every path separator
// becomes Delimiter and leading delimiters are stripped. Normalize is
// idempotent.
func Normalize(path string) string {
	ref := strings.ReplaceAll(path, "/", Delimiter)
	if os.PathSeparator != '/' {
		ref = strings.ReplaceAll(ref, string(os.PathSeparator), Delimiter)
	}
	return strings.TrimLeft(ref, Delimiter)
}

// ModuleReference removes the strip prefix from path and normalizes the
// remainder. Both arguments are cleaned first so "a/b/" and "a/b" strip the
// same. A strip value that is not a prefix of path is ignored.
func ModuleReference(path, strip string) string {
	path = filepath.Clean(path)
	if strip != "" {
		strip = filepath.Clean(strip)
		if rel, err := filepath.Rel(strip, path); err == nil && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	if path == "." {
		return ""
	}
	return Normalize(path)
}

// TrimExt returns path without its final extension.
func TrimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// CandidateDirs walks root and returns, in lexical walk order, every
// directory below it whose path relative to root contains none of ignores
// and whose base name contains at least one of patterns. The directories
// above root are not matched, so a root inside a vendor or .cache tree still
// yields candidates. Nil patterns or ignores fall back to the defaults. The
// root itself is never a candidate.
func CandidateDirs(root string, patterns, ignores []string) ([]string, error) {
	if patterns == nil {
		patterns = DefaultPatterns
	}
	if ignores == nil {
		ignores = DefaultIgnores
	}

	root = filepath.Clean(root)
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, the rest of the walk goes on.
			if path != root && d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return err
		}
		if !d.IsDir() || path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if containsAny(rel, ignores) {
			// Every descendant path contains the same marker.
			return fs.SkipDir
		}
		if containsAny(d.Name(), patterns) {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
