// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output sorts and renders row sets as text tables, JSON or YAML for
// the cliwire commands.
package output
