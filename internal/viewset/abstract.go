// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package viewset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cliwire/internal/version"
)

// Abstract is a Base with the echo, list and command_version built-ins.
type Abstract struct {
	Base
}

// DefaultCommands is the allow-list used when Commands is nil.
func (a *Abstract) DefaultCommands() []string {
	return []string{"echo", "list", "version"}
}

// Define registers the built-ins. Types embedding Abstract call it from
// their own Define to keep them.
func (a *Abstract) Define(b *Builder) {
	b.Command("echo", &cli.Command{
		Name:  "echo",
		Usage: "Print an attribute of the viewset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "attribute",
				Aliases: []string{"a"},
				Usage:   "attribute to print",
			},
			&cli.StringFlag{
				Name:    "list_delimiter",
				Aliases: []string{"ld"},
				Usage:   "delimiter used to join list values",
				Value:   "\n",
			},
		},
	}, a.echo)

	b.Command("list", &cli.Command{
		Name:  "list",
		Usage: "List the attributes of the viewset",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "values", Aliases: []string{"v"}, Usage: "include attribute values"},
			&cli.BoolFlag{Name: "types", Aliases: []string{"t"}, Usage: "include attribute types"},
			&cli.BoolFlag{Name: "named", Aliases: []string{"n"}, Usage: "include the built-in viewset fields"},
		},
	}, a.list)

	b.Command("version", &cli.Command{
		Name:  "command_version",
		Usage: "Print the version of the viewset",
	}, a.version)
}

func (a *Abstract) echo(_ context.Context, cmd *cli.Command) error {
	a.EchoAttr(writer(cmd), cmd.String("attribute"), EchoOptions{Delimiter: cmd.String("list_delimiter")})
	return nil
}

func (a *Abstract) list(_ context.Context, cmd *cli.Command) error {
	w := writer(cmd)
	opts := EchoOptions{
		Delimiter: ", ",
		NameOnly:  !cmd.Bool("values"),
		ShowType:  cmd.Bool("types"),
	}
	for _, name := range a.AttrNames(cmd.Bool("named")) {
		a.EchoAttr(w, name, opts)
	}
	return nil
}

func (a *Abstract) version(_ context.Context, cmd *cli.Command) error {
	if a.Version == "" {
		a.SetAttr("Version", version.Version)
	}
	a.EchoAttr(writer(cmd), "Version", EchoOptions{Delimiter: "\n"})
	return nil
}

// EchoOptions shape the output of EchoAttr.
type EchoOptions struct {
	Delimiter string
	NameOnly  bool
	ShowType  bool
}

// EchoAttr writes one attribute as 'name' followed by its value. Maps are
// rendered as indented JSON and slices are joined with the delimiter.
func (b *Base) EchoAttr(w io.Writer, name string, opts EchoOptions) {
	value, ok := b.Attr(name)
	if !ok {
		fmt.Fprintf(w, "Error: Unable to find attribute with name '%s'\n", name)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "'%s' ", name)
	if !opts.NameOnly {
		if opts.ShowType {
			fmt.Fprintf(&sb, "'%T' ", value)
		}
		sb.WriteString(formatValue(value, opts.Delimiter))
	}
	fmt.Fprintln(w, sb.String())
}

func formatValue(value any, delim string) string {
	if value == nil {
		return ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		out, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(out)
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = fmt.Sprint(rv.Index(i).Interface())
		}
		return strings.Join(parts, delim)
	default:
		return fmt.Sprint(value)
	}
}

func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
