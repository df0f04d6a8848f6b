// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cliwire/internal/attrs"
	"github.com/tfctl/cliwire/internal/filters"
	"github.com/tfctl/cliwire/internal/log"
	"github.com/tfctl/cliwire/internal/meta"
	"github.com/tfctl/cliwire/internal/output"
	"github.com/tfctl/cliwire/internal/registrar"
	"github.com/tfctl/cliwire/internal/scan"
	"github.com/tfctl/cliwire/internal/util"
)

// Default report columns, in --attrs form.
var (
	recordAttrs = attrs.AttrList{
		{Key: "module", Title: "MODULE", Include: true},
		{Key: "size", Title: "SIZE", Include: true},
		{Key: "declared", Title: "DECLARED", Include: true},
		{Key: "excluded", Title: "EXCLUDED", Include: true},
		{Key: "path", Title: "PATH", Include: false},
	}
	targetAttrs = attrs.AttrList{
		{Key: "module", Title: "MODULE", Include: true},
		{Key: "symbol", Title: "SYMBOL", Include: true},
	}
)

// discoverCommandBuilder returns the command that reports what discovery
// finds below a plugin root without binding anything.
func discoverCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "discover",
		Usage:     "report the modules and symbols found below a plugin root",
		UsageText: "cliwire discover [ROOT] [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append(NewGlobalFlags(),
			newSchemaFlag(),
			&cli.StringFlag{
				Name:    "attrs",
				Aliases: []string{"a"},
				Usage:   "comma-separated key[:title[:transform]] specs shaping text columns",
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "comma-separated filter expressions, e.g. module^plugins.demo,declared@Echo",
			},
			&cli.BoolFlag{
				Name:  "targets",
				Usage: "report the bind targets instead of the scanned files",
			},
		),
		Action: discoverAction,
	}
}

func discoverAction(_ context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	targets := cmd.Bool("targets")

	if cmd.Bool("schema") {
		if targets {
			output.DumpSchema(reflect.TypeOf(registrar.Target{}), w)
		} else {
			output.DumpSchema(reflect.TypeOf(scan.Record{}), w)
		}
		return nil
	}

	root := cmd.Args().First()
	if root == "" {
		root = GetMeta(cmd).RootDir
	}
	if root == "" {
		return fmt.Errorf("no plugin root found, pass one as an argument or with --root")
	}
	dir, _, err := util.ParseRootDir(root)
	if err != nil {
		return fmt.Errorf("failed to parse plugin root (%s): %w", root, err)
	}

	plan := registrar.New(registrar.OptionsFromConfig()).Plan(dir)
	log.Debugf("planned %d records and %d targets below %s", len(plan.Records), len(plan.Targets), dir)

	for _, d := range plan.Diagnostics.Warnings() {
		fmt.Fprintln(cmd.Root().ErrWriter, d.String())
	}

	rows, list := recordRows(plan.Records), recordAttrs
	if targets {
		rows, list = targetRows(plan.Targets), targetAttrs
	}
	rows = filters.Apply(rows, cmd.String("filter"))
	return report(cmd, rows, list)
}

// report renders rows. Text output is shaped by --attrs; structured formats
// carry every key.
func report(cmd *cli.Command, rows []map[string]interface{}, defaults attrs.AttrList) error {
	opts := output.OptionsFromCommand(cmd)
	if opts.Format != "" && opts.Format != "text" {
		return output.Render(cmd.Root().Writer, rows, nil, opts)
	}

	list := append(attrs.AttrList(nil), defaults...)
	if err := list.Set(cmd.String("attrs")); err != nil {
		return err
	}
	list.SetGlobalTransformSpec()

	// Sort before values are joined and transformed.
	output.SortDataset(rows, opts.Sort)
	opts.Sort = ""

	var columns []output.Column
	for _, a := range list.Included() {
		columns = append(columns, output.Column{Key: a.Key, Title: a.Title, Size: a.Key == "size"})
	}
	for _, row := range rows {
		for _, a := range list.Included() {
			if v, ok := row[a.Key].([]string); ok {
				row[a.Key] = strings.Join(v, ",")
			}
			row[a.Key] = a.Transform(row[a.Key])
		}
	}
	return output.Render(cmd.Root().Writer, rows, columns, opts)
}

func recordRows(records []scan.Record) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, map[string]interface{}{
			"module":   r.Module,
			"path":     r.Path,
			"size":     r.Size,
			"declared": r.Declared,
			"excluded": r.Excluded,
		})
	}
	return rows
}

func targetRows(targets []registrar.Target) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(targets))
	for _, t := range targets {
		rows = append(rows, map[string]interface{}{
			"module": t.Module,
			"symbol": t.Symbol,
		})
	}
	return rows
}
