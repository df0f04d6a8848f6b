// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/cliwire/internal/config"
	"github.com/tfctl/cliwire/internal/log"
)

// Formats accepted by Render.
var Formats = []string{"text", "json", "yaml"}

// Column selects one row key for text output.
type Column struct {
	Key   string
	Title string
	// Size renders integer values as human readable byte counts.
	Size bool
}

// Options control rendering.
type Options struct {
	Format  string
	Sort    string
	Titles  bool
	Color   bool
	Padding int
	Header  string
	Footer  string
}

// OptionsFromCommand reads the output, sort, titles, color and padding flags
// of cmd. Color is only honored when stdout is a terminal.
func OptionsFromCommand(cmd *cli.Command) Options {
	return Options{
		Format:  cmd.String("output"),
		Sort:    cmd.String("sort"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color") && IsTerminal(os.Stdout),
		Padding: cmd.Int("padding"),
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	empty := ""
	if len(emptyValue) > 0 {
		empty = emptyValue[0]
	}
	if value == nil || reflect.ValueOf(value).IsZero() {
		return empty
	}

	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return fmt.Sprintf("%.0f", v)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// HumanSize renders a byte count such as "1.2 kB".
func HumanSize(value interface{}) string {
	switch v := value.(type) {
	case int64:
		if v >= 0 {
			return humanize.Bytes(uint64(v))
		}
	case int:
		if v >= 0 {
			return humanize.Bytes(uint64(v))
		}
	case float64:
		if v >= 0 {
			return humanize.Bytes(uint64(v))
		}
	}
	return InterfaceToString(value, "-")
}

// Render sorts rows by opts.Sort and writes them in opts.Format. Structured
// formats include every key of every row; text output shows columns only.
func Render(w io.Writer, rows []map[string]interface{}, columns []Column, opts Options) error {
	if w == nil {
		w = os.Stdout
	}
	SortDataset(rows, opts.Sort)

	switch opts.Format {
	case "json":
		if rows == nil {
			rows = []map[string]interface{}{}
		}
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		out, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "", "text":
		TableWriter(w, rows, columns, opts)
		return nil
	default:
		return fmt.Errorf("unknown output format %q, must be one of %v", opts.Format, Formats)
	}
}

// TableWriter renders rows as a borderless table honoring color, titles and
// padding options.
func TableWriter(w io.Writer, rows []map[string]interface{}, columns []Column, opts Options) {
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)
	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")
		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, 0, len(columns))
		for _, col := range columns {
			if col.Size {
				line = append(line, HumanSize(row[col.Key]))
				continue
			}
			line = append(line, InterfaceToString(row[col.Key], "-"))
		}
		cells = append(cells, line)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	pad := opts.Padding
	if pad == 0 {
		pad = 1
	}
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}
			if col > 0 {
				style = style.PaddingLeft(pad)
			}
			return style
		}).
		Headers().
		Rows(cells...)

	if opts.Titles {
		titles := make([]string, len(columns))
		for i, col := range columns {
			titles[i] = col.Title
			if titles[i] == "" {
				titles[i] = col.Key
			}
		}
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(titles...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}
}

// getColors returns the title, even row and odd row colors. Configured
// values under key win; otherwise a default suited to the terminal
// background is used.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolve := func(key, light, dark string) color.Color {
		if c, err := config.GetString(key); err == nil {
			return lipgloss.Color(c)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolve(key+".title", "#b08800", "#f6be00")
	even = resolve(key+".even", "#333333", "#ffffff")
	odd = resolve(key+".odd", "#0088a0", "#00c8f0")
	log.Tracef("table colors: %v %v %v", header, even, odd)
	return
}
