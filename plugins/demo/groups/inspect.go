// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package groups

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cliwire/internal/binder"
	"github.com/tfctl/cliwire/internal/viewset"
)

// Inspector exposes the viewsets.inspector configuration section.
type Inspector struct {
	viewset.Abstract
	Region string
	Tags   []string
}

// Define keeps the built-ins and adds region and tags.
func (i *Inspector) Define(b *viewset.Builder) {
	i.Abstract.Define(b)
	b.Command("show_region", &cli.Command{
		Name:  "region",
		Usage: "print the configured region",
	}, i.region)
	b.Command("show_tags", &cli.Command{
		Name:  "tags",
		Usage: "print the configured tags, sorted",
	}, i.tags)
}

// Convert imports the payload and lifts region and tags onto fields.
func (i *Inspector) Convert() error {
	if err := i.ImportPayload(); err != nil {
		return err
	}
	if r, ok := i.Attr("region"); ok {
		i.Region = fmt.Sprint(r)
	}
	if t, ok := i.Attr("tags"); ok {
		if list, ok := t.([]any); ok {
			for _, v := range list {
				i.Tags = append(i.Tags, fmt.Sprint(v))
			}
		}
	}
	sort.Strings(i.Tags)
	return nil
}

func (i *Inspector) region(_ context.Context, cmd *cli.Command) error {
	region := i.Region
	if region == "" {
		region = "-"
	}
	_, err := fmt.Fprintln(cmd.Root().Writer, region)
	return err
}

func (i *Inspector) tags(_ context.Context, cmd *cli.Command) error {
	for _, t := range i.Tags {
		if _, err := fmt.Fprintln(cmd.Root().Writer, t); err != nil {
			return err
		}
	}
	return nil
}

// Inspect builds the inspect group. Every build gets its own instance.
//
//cli:viewset Inspector
func Inspect() (*cli.Command, error) {
	return viewset.Build(&Inspector{},
		viewset.WithName("inspect"),
		viewset.WithVersion("1.0.0"),
		viewset.WithCommands("echo", "list", "version", "show_"),
		viewset.WithHidden("echo"),
		viewset.WithConfigPayload("inspector"),
	)
}

func init() {
	binder.Provide(Module+".inspect", "Inspect", Inspect)
}
