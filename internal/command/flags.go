// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/cliwire/internal/config"
)

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the attribute names of the report",
		HideDefault: true,
	}
}

// NewGlobalFlags returns the report flags shared by commands that render
// rows.
func NewGlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between text columns",
			Value: 2,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Validator: func(value string) error {
				return FlagValidators(value, SortValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}
}

// NewRootFlag constructs the --root flag. Besides the command line it reads
// CLIWIRE_PLUGINS and, when a config file is loaded, plugins.root and root
// from it.
func NewRootFlag() *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "root",
		Aliases: []string{"r"},
		Usage:   "plugin root directory, optionally suffixed with ::namespace",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("CLIWIRE_PLUGINS"),
		),
		Value: DefaultPluginRoot,
	}

	if src := config.Config.Source; src != "" {
		flag = NameSpacedValueChainFlagFromConfigFile("plugins", src, flag)
	}
	return flag
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
