// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package viewset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cliwire/internal/log"
)

// MetadataKey is the command metadata key holding the bound viewset.
const MetadataKey = "viewset"

type entry struct {
	method string
	cmd    *cli.Command
	action cli.ActionFunc
}

// Builder collects the commands a viewset offers.
type Builder struct {
	entries []entry
}

// Command registers cmd under method. The command name defaults to method.
// The action usually is a method value of the viewset, so it runs against
// the instance that was built.
func (b *Builder) Command(method string, cmd *cli.Command, action cli.ActionFunc) {
	if cmd == nil {
		cmd = &cli.Command{}
	}
	b.entries = append(b.entries, entry{method: method, cmd: cmd, action: action})
}

// Methods returns the registered method names in registration order.
func (b *Builder) Methods() []string {
	out := make([]string, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.method
	}
	return out
}

// defaulter supplies an allow-list when the instance sets none.
type defaulter interface {
	DefaultCommands() []string
}

// Build applies opts to v and returns a fresh group of v's allowed commands.
// Convert runs after the group is assembled; its error aborts the build.
func Build(v Viewset, opts ...Option) (*cli.Command, error) {
	if v == nil {
		return nil, errors.New("viewset is nil")
	}
	b := v.base()
	b.self = v
	for _, opt := range opts {
		opt(b)
	}

	allow := b.Commands
	if allow == nil {
		if d, ok := v.(defaulter); ok {
			allow = d.DefaultCommands()
		}
	}

	name := b.group
	if name == "" {
		name = b.Name
	}
	group := &cli.Command{
		Name:     name,
		Usage:    b.Usage,
		Metadata: map[string]any{MetadataKey: v},
	}

	var builder Builder
	v.Define(&builder)
	for _, e := range unmatched(allow, builder.Methods()) {
		log.Warnf("viewset %s: allow-list entry %q matches no command", name, e)
	}
	for _, e := range builder.entries {
		if !matchesAny(e.method, allow) {
			log.Tracef("viewset %s: %s not in allow-list", name, e.method)
			continue
		}
		cmd := e.cmd
		if cmd.Name == "" {
			cmd.Name = e.method
		}
		cmd.Hidden = matchesAny(e.method, b.HiddenCommands)
		if e.action != nil {
			cmd.Action = e.action
		}
		if cmd.Metadata == nil {
			cmd.Metadata = map[string]any{}
		}
		cmd.Metadata[MetadataKey] = v
		group.Commands = append(group.Commands, cmd)
	}

	if err := v.Convert(); err != nil {
		return nil, fmt.Errorf("failed to convert viewset %s: %w", name, err)
	}
	return group, nil
}

// FromCommand returns the viewset bound to cmd or one of its ancestors.
func FromCommand(cmd *cli.Command) (Viewset, bool) {
	for _, c := range cmd.Lineage() {
		if v, ok := c.Metadata[MetadataKey].(Viewset); ok {
			return v, true
		}
	}
	return nil, false
}

// matchesAny reports whether method contains one of the non-empty entries.
func matchesAny(method string, entries []string) bool {
	for _, e := range entries {
		if e != "" && strings.Contains(method, e) {
			return true
		}
	}
	return false
}

// unmatched returns the non-empty allow-list entries no method matches.
func unmatched(entries, methods []string) []string {
	var out []string
	for _, e := range entries {
		if e == "" {
			continue
		}
		found := false
		for _, m := range methods {
			if matchesAny(m, []string{e}) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, e)
		}
	}
	return out
}
