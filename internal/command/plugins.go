// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cliwire/internal/binder"
	"github.com/tfctl/cliwire/internal/diag"
	"github.com/tfctl/cliwire/internal/log"
	"github.com/tfctl/cliwire/internal/meta"
	"github.com/tfctl/cliwire/internal/output"
	"github.com/tfctl/cliwire/internal/registrar"
)

// pluginsCommandBuilder returns the group holding every command discovered
// below the plugin root of m.
func pluginsCommandBuilder(m meta.Meta) *cli.Command {
	group := &cli.Command{
		Name:      "plugins",
		Usage:     "run commands discovered below the plugin root",
		UsageText: "cliwire plugins [--root DIR[::NAMESPACE]] <command> [args]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: []cli.Flag{
			NewRootFlag(),
			&cli.BoolFlag{
				Name:    "diagnostics",
				Aliases: []string{"d"},
				Usage:   "print discovery diagnostics",
			},
		},
		Action: pluginsAction,
	}

	if m.RootDir == "" {
		return group
	}

	diags := registrar.New(registrar.OptionsFromConfig()).Load(group, m.RootDir)
	log.Debugf("discovered %d commands below %s with %d warnings", len(group.Commands), m.RootDir, len(diags.Warnings()))
	group.Metadata["diagnostics"] = diags
	return group
}

// pluginsAction lists the discovered commands when no subcommand is given.
func pluginsAction(_ context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer

	if cmd.Bool("diagnostics") {
		diags, _ := cmd.Metadata["diagnostics"].(diag.List)
		for _, d := range diags {
			fmt.Fprintln(cmd.Root().ErrWriter, d.String())
		}
		fmt.Fprintf(cmd.Root().ErrWriter, "registered modules: %s\n", strings.Join(binder.Default.Modules(), ", "))
	}

	var rows []map[string]interface{}
	for _, c := range cmd.Commands {
		if c.Hidden || c.Name == "help" {
			continue
		}
		rows = append(rows, map[string]interface{}{
			"name":     c.Name,
			"usage":    c.Usage,
			"commands": len(c.Commands),
		})
	}
	if len(rows) == 0 {
		fmt.Fprintf(w, "no plugin commands found below %q\n", GetMeta(cmd).RootDir)
		return nil
	}

	return output.Render(w, rows, []output.Column{
		{Key: "name", Title: "COMMAND"},
		{Key: "commands", Title: "SUBCOMMANDS"},
		{Key: "usage", Title: "USAGE"},
	}, output.Options{Format: "text", Titles: true, Sort: "name", Padding: 2})
}
