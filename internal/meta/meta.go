// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package meta carries runtime state from start-up to command actions.
package meta

import (
	"context"

	"github.com/tfctl/cliwire/internal/config"
)

// RootDirSpec is the resolved plugin root and the configuration namespace
// selected with a "::" suffix.
type RootDirSpec struct {
	RootDir   string
	Namespace string
}

// Meta contains runtime metadata shared by commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	RootDirSpec
	StartingDir string
}
