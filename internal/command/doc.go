// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the cliwire command set. It wires flags,
// validators and actions for the plugins group, whose subcommands are
// discovered at start-up, and for the discover report.
package command
