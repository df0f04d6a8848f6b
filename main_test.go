// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"cliwire", "discover"},
			expected: []string{"cliwire", "discover"},
		},
		{
			name:     "no duplicates",
			args:     []string{"cliwire", "discover", "--output", "text", "--titles"},
			expected: []string{"cliwire", "discover", "--output", "text", "--titles"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"cliwire", "discover", "--output", "json", "--titles", "--output", "text"},
			expected: []string{"cliwire", "discover", "--titles", "--output", "text"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"cliwire", "discover", "--titles", "--color", "--titles"},
			expected: []string{"cliwire", "discover", "--color", "--titles"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"cliwire", "discover", "--output=json", "--titles", "--output=text"},
			expected: []string{"cliwire", "discover", "--titles", "--output=text"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"cliwire", "discover", "--output=json", "--output", "text"},
			expected: []string{"cliwire", "discover", "--output", "text"},
		},
		{
			name:     "positional args preserved",
			args:     []string{"cliwire", "discover", "/path/to/plugins", "--output", "json", "--output", "text"},
			expected: []string{"cliwire", "discover", "/path/to/plugins", "--output", "text"},
		},
		{
			name:     "short flags deduplicated",
			args:     []string{"cliwire", "discover", "-o", "json", "-o", "text"},
			expected: []string{"cliwire", "discover", "-o", "text"},
		},
		{
			name:     "positional after value flag",
			args:     []string{"cliwire", "discover", "--output", "json", "/path", "--output", "text"},
			expected: []string{"cliwire", "discover", "/path", "--output", "text"},
		},
		{
			name:     "terminator stops processing",
			args:     []string{"cliwire", "plugins", "--root", "a", "--", "--root", "b", "--root", "c"},
			expected: []string{"cliwire", "plugins", "--root", "a", "--", "--root", "b", "--root", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deduplicateFlags(tt.args))
		})
	}
}

func TestExpandSets(t *testing.T) {
	sets := map[string][]string{
		"discover.wide": {"--titles", "--output text"},
		"discover.none": nil,
	}
	lookup := func(command, set string) []string {
		return sets[command+"."+set]
	}

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "no set",
			args:     []string{"cliwire", "discover", "--titles"},
			expected: []string{"cliwire", "discover", "--titles"},
		},
		{
			name:     "set expanded in place",
			args:     []string{"cliwire", "discover", "@wide", "./plugins"},
			expected: []string{"cliwire", "discover", "--titles", "--output", "text", "./plugins"},
		},
		{
			name:     "unknown set removed",
			args:     []string{"cliwire", "discover", "@missing", "./plugins"},
			expected: []string{"cliwire", "discover", "./plugins"},
		},
		{
			name:     "empty set removed",
			args:     []string{"cliwire", "discover", "./plugins", "@none"},
			expected: []string{"cliwire", "discover", "./plugins"},
		},
		{
			name:     "bare at sign kept",
			args:     []string{"cliwire", "discover", "@"},
			expected: []string{"cliwire", "discover", "@"},
		},
		{
			name:     "after terminator kept",
			args:     []string{"cliwire", "discover", "--", "@wide"},
			expected: []string{"cliwire", "discover", "--", "@wide"},
		},
		{
			name:     "command position ignored",
			args:     []string{"cliwire", "@wide"},
			expected: []string{"cliwire", "@wide"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandSets(tt.args, lookup))
		})
	}
}

func TestHandleNakedCommand(t *testing.T) {
	assert.Equal(t, []string{"cliwire", "--help"}, handleNakedCommand([]string{"cliwire"}))
	assert.Equal(t, []string{"cliwire", "discover"}, handleNakedCommand([]string{"cliwire", "discover"}))
}

func TestHandleVersion(t *testing.T) {
	assert.False(t, handleVersion([]string{"cliwire", "discover", "-v"}))
	assert.False(t, handleVersion([]string{"cliwire"}))
}
