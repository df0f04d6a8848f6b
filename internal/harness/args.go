// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package harness

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"
)

var (
	// ErrMissingPositional is returned when a required flag has no value.
	ErrMissingPositional = errors.New("missing positional parameter")
	// ErrTooManyValues is returned when there are more values than flags.
	ErrTooManyValues = errors.New("more values than flags")
	// ErrNotInTree is returned for a command that is not below the root.
	ErrNotInTree = errors.New("command is not part of the root command tree")
)

type requiredFlag interface {
	IsRequired() bool
}

// Args converts positional values into flag arguments for cmd. Value i
// becomes --<name of flag i> <value>. Bool flags become --<name> when the
// value is true and are dropped otherwise.
func Args(cmd *cli.Command, values ...any) ([]string, error) {
	if len(values) > len(cmd.Flags) {
		return nil, fmt.Errorf("%s takes %d values, got %d: %w", cmd.Name, len(cmd.Flags), len(values), ErrTooManyValues)
	}

	var args []string
	for i, flag := range cmd.Flags {
		name := flag.Names()[0]
		if i >= len(values) {
			if r, ok := flag.(requiredFlag); ok && r.IsRequired() {
				return nil, fmt.Errorf("%s: --%s: %w", cmd.Name, name, ErrMissingPositional)
			}
			continue
		}

		if _, ok := flag.(*cli.BoolFlag); ok {
			on, err := truthy(values[i])
			if err != nil {
				return nil, fmt.Errorf("%s: --%s: %w", cmd.Name, name, err)
			}
			if on {
				args = append(args, "--"+name)
			}
			continue
		}
		args = append(args, "--"+name, fmt.Sprint(values[i]))
	}
	return args, nil
}

func truthy(v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return strconv.ParseBool(fmt.Sprint(v))
}

// commandPath returns the names leading from root to cmd, root excluded.
func commandPath(root, cmd *cli.Command) ([]string, bool) {
	if root == cmd {
		return []string{}, true
	}
	for _, sub := range root.Commands {
		if path, ok := commandPath(sub, cmd); ok {
			return append([]string{sub.Name}, path...), true
		}
	}
	return nil, false
}
