// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cliwire/internal/config"
	"github.com/tfctl/cliwire/internal/log"
	"github.com/tfctl/cliwire/internal/meta"
	"github.com/tfctl/cliwire/internal/util"
)

// InitApp builds the root command. The plugin root is resolved from args
// before parsing because discovered commands must be attached before urfave
// sees the command line.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	spec := pluginRootSpec(args)
	dir, ns, err := util.ParseRootDir(spec)
	if err != nil {
		// A missing default root is not an error; there is simply nothing to
		// discover.
		if spec != DefaultPluginRoot {
			return nil, fmt.Errorf("failed to parse plugin root (%s): %w", spec, err)
		}
		log.Debugf("default plugin root %s not usable: %v", spec, err)
		dir = ""
	}
	config.Config.Namespace = ns

	m := meta.Meta{
		Args:        args,
		Config:      config.Config,
		Context:     ctx,
		RootDirSpec: meta.RootDirSpec{RootDir: dir, Namespace: ns},
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:                  "cliwire",
		Usage:                 "Discover and wire plugin commands",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "cliwire version info",
				HideDefault: true,
			},
		},
		Metadata: map[string]any{"meta": m},
	}

	app.Commands = append(app.Commands,
		pluginsCommandBuilder(m),
		discoverCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
