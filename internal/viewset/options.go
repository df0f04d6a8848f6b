// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package viewset

import (
	"github.com/tfctl/cliwire/internal/config"
	"github.com/tfctl/cliwire/internal/log"
)

// Option sets instance state before the group is built.
type Option func(*Base)

// WithName overrides the group name.
func WithName(name string) Option {
	return func(b *Base) { b.group = name }
}

// WithAttr sets one instance attribute.
func WithAttr(name string, value any) Option {
	return func(b *Base) { b.SetAttr(name, value) }
}

// WithPayload sets the configuration payload.
func WithPayload(payload any) Option {
	return func(b *Base) { b.Viewset = payload }
}

// WithVersion sets the version printed by command_version.
func WithVersion(version string) Option {
	return func(b *Base) { b.Version = version }
}

// WithCommands replaces the allow-list.
func WithCommands(methods ...string) Option {
	return func(b *Base) { b.Commands = methods }
}

// WithHidden replaces the hide-list.
func WithHidden(methods ...string) Option {
	return func(b *Base) { b.HiddenCommands = methods }
}

// WithConfigPayload uses the viewsets.<name> section of the configuration
// file as payload. A missing section leaves the payload untouched.
func WithConfigPayload(name string) Option {
	return func(b *Base) {
		m, err := config.GetMap("viewsets." + name)
		if err != nil {
			log.Debugf("no configuration payload for viewset %s: %v", name, err)
			return
		}
		b.Viewset = m
	}
}
