package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/cliwire/internal/command"

	_ "github.com/tfctl/cliwire/plugins/demo/groups"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Extras holds hand-written examples and notes keyed by command ID.
type Extras map[string]struct {
	Examples []Example `yaml:"examples"`
	Notes    []string  `yaml:"notes,omitempty"`
}

type Subcommand struct {
	ID          string
	Path        string
	Short       string
	Description string
	Usage       string
	Flags       []Flag
	Commands    []string
	Examples    []Example
	Notes       []string
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

type usager interface{ GetUsage() string }

type valuer interface{ GetValue() string }

type valueTaker interface{ TakesValue() bool }

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR [PLUGIN_ROOT]")
		os.Exit(1)
	}
	docs := os.Args[1]

	args := []string{"cliwire"}
	if len(os.Args) > 2 {
		args = append(args, "plugins", "--root", os.Args[2])
	}
	app, err := command.InitApp(context.Background(), args)
	if err != nil {
		panic(err)
	}

	var extras Extras
	if data, err := os.ReadFile(filepath.Join(docs, "templates", "extras.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &extras); err != nil {
			panic(err)
		}
	}

	types := []Outputs{
		{Template: "templates/cliwire.md.tmpl", Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: "templates/cliwire.man.tmpl", Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "cliwire-", Suffix: ".1"},
	}

	for _, sub := range collect(app, "") {
		if e, ok := extras[sub.ID]; ok {
			sub.Examples = e.Examples
			sub.Notes = e.Notes
		}

		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    getVersion(),
		}

		for _, t := range types {
			if err := os.MkdirAll(t.Folder, 0755); err != nil {
				panic(err)
			}

			name := filepath.Join(t.Folder, t.Prefix+sub.ID+t.Suffix)
			fmt.Println("Generating", name)
			if err := render(name, t.Template, metadata); err != nil {
				panic(err)
			}
		}
	}
}

// collect walks the visible command tree below cmd. IDs join the command
// path with dashes, so "plugins greetings wave" is plugins-greetings-wave.
func collect(cmd *cli.Command, prefix string) []Subcommand {
	var out []Subcommand
	for _, c := range cmd.Commands {
		if c.Hidden || c.Name == "help" {
			continue
		}
		path := strings.TrimSpace(prefix + " " + c.Name)

		sub := Subcommand{
			ID:          strings.ReplaceAll(path, " ", "-"),
			Path:        path,
			Short:       c.Usage,
			Description: c.Description,
			Usage:       c.UsageText,
			Flags:       flags(c.Flags),
		}
		if sub.Usage == "" {
			sub.Usage = "cliwire " + path + " [options]"
		}
		for _, child := range c.Commands {
			if !child.Hidden && child.Name != "help" {
				sub.Commands = append(sub.Commands, child.Name)
			}
		}

		out = append(out, sub)
		out = append(out, collect(c, path)...)
	}
	return out
}

// flags converts cli flags, sorted by name.
func flags(in []cli.Flag) []Flag {
	out := make([]Flag, 0, len(in))
	for _, f := range in {
		names := f.Names()
		fl := Flag{ID: names[0]}

		var syntax []string
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}
		fl.Syntax = strings.Join(syntax, ", ")
		if v, ok := f.(valueTaker); ok && v.TakesValue() {
			fl.Syntax += " VALUE"
		}
		if u, ok := f.(usager); ok {
			fl.Description = u.GetUsage()
		}
		if v, ok := f.(valuer); ok {
			fl.Default = v.GetValue()
		}
		out = append(out, fl)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

func render(name, tmplName string, data TemplateData) error {
	tmpl, err := template.ParseFS(templates, tmplName)
	if err != nil {
		return err
	}

	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer file.Close()

	return tmpl.Execute(file, data)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
