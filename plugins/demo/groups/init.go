// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package groups

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cliwire/internal/binder"
)

// Module is the reference discovery computes for this file when the plugin
// root is ./plugins.
const Module = "plugins.demo.groups"

// Greetings holds the greeting commands.
//
//cli:group
var Greetings = &cli.Command{
	Name:  "greetings",
	Usage: "say hello in a few ways",
}

// Wave is attached to Greetings by hand, so discovery does not bind it at
// the top level.
//
//cli:command
var Wave = &cli.Command{
	Name:  "wave",
	Usage: "wave at someone",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Aliases:  []string{"n"},
			Usage:    "who to wave at",
			Required: true,
		},
	},
	Action: func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprintf(cmd.Root().Writer, "o/ %s\n", cmd.String("name"))
		return err
	},
}

// Echo prints its arguments.
//
//cli:command
func Echo() (*cli.Command, error) {
	return &cli.Command{
		Name:      "echo",
		Usage:     "print the arguments",
		ArgsUsage: "[WORDS...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "upper",
				Usage: "print in upper case",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			out := strings.Join(cmd.Args().Slice(), " ")
			if cmd.Bool("upper") {
				out = strings.ToUpper(out)
			}
			_, err := fmt.Fprintln(cmd.Root().Writer, out)
			return err
		},
	}, nil
}

func init() {
	Greetings.Commands = append(Greetings.Commands, Wave)

	binder.ProvideCommand(Module, "Greetings", Greetings)
	binder.ProvideCommand(Module, "Wave", Wave)
	binder.Provide(Module, "Echo", Echo)
}
