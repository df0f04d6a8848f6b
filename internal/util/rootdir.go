// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package util holds small helpers for command line arguments.
package util

import (
	"os"
	"path/filepath"
	"strings"
)

// NamespaceSeparator splits a plugin root argument from a configuration
// namespace, as in "./plugins::work".
const NamespaceSeparator = "::"

// ParseRootDir parses a plugin root argument and returns the absolute
// directory and the optional configuration namespace that follows "::". It
// returns an error if the directory does not exist, the argument is empty or
// it names something other than a directory.
func ParseRootDir(spec string) (dir string, namespace string, err error) {
	if spec == "" {
		return "", "", os.ErrInvalid
	}

	dir, namespace, _ = strings.Cut(spec, NamespaceSeparator)
	namespace, _, _ = strings.Cut(namespace, NamespaceSeparator)

	if dir, err = filepath.Abs(dir); err != nil {
		return "", "", err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", "", err
	}
	if !info.IsDir() {
		return "", "", os.ErrInvalid
	}
	return dir, namespace, nil
}
