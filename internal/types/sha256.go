// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package types holds flag value types shared by plugin commands.
package types

import (
	"errors"
	"fmt"
	"os"
	"regexp"
)

// ErrNotSHA256 is returned for a value that is neither a readable file nor a
// SHA-256 hex digest.
var ErrNotSHA256 = errors.New("not a valid sha256")

var (
	sha256Re      = regexp.MustCompile(`[A-Fa-f0-9]{64}`)
	sha256ExactRe = regexp.MustCompile(`^[A-Fa-f0-9]{64}$`)
)

// ParseSHA256 resolves a flag value to SHA-256 digests. An existing regular
// file yields every digest found in its contents. Any other value must itself
// be a digest.
func ParseSHA256(value string) ([]string, error) {
	if info, err := os.Stat(value); err == nil {
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("expected path to be a file, got %q", value)
		}
		data, err := os.ReadFile(value)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", value, err)
		}
		return sha256Re.FindAllString(string(data), -1), nil
	}

	if sha256ExactRe.MatchString(value) {
		return []string{value}, nil
	}
	return nil, fmt.Errorf("%q: %w", value, ErrNotSHA256)
}

// SHA256Validator validates a cli.StringFlag value with ParseSHA256.
func SHA256Validator(value string) error {
	if value == "" {
		return nil
	}
	_, err := ParseSHA256(value)
	return err
}
