// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cliwire/internal/config"
	"github.com/tfctl/cliwire/internal/meta"
)

// DefaultPluginRoot is used when neither --root, CLIWIRE_PLUGINS nor the
// plugins.root config key name one.
const DefaultPluginRoot = "./plugins"

// GetMeta returns the meta.Meta stored in the command's Metadata, searching
// ancestors. If missing, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil {
		return meta.Meta{}
	}
	for _, c := range cmd.Lineage() {
		if m, ok := c.Metadata["meta"].(meta.Meta); ok {
			return m
		}
	}
	return meta.Meta{}
}

// pluginRootSpec resolves the plugin root before the app exists, using the
// same sources as NewRootFlag: any of its names on the command line, then
// CLIWIRE_PLUGINS, then the plugins.root and root config keys, then
// DefaultPluginRoot.
func pluginRootSpec(args []string) string {
	names := NewRootFlag().Names()
	for i := 1; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		for _, name := range names {
			for _, dash := range []string{"-", "--"} {
				if v, ok := strings.CutPrefix(a, dash+name+"="); ok {
					return v
				}
				if a == dash+name && i+1 < len(args) {
					return args[i+1]
				}
			}
		}
	}
	if v := os.Getenv("CLIWIRE_PLUGINS"); v != "" {
		return v
	}
	for _, key := range []string{"plugins.root", "root"} {
		if v, err := config.GetString(key); err == nil && v != "" {
			return v
		}
	}
	return DefaultPluginRoot
}
