// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package groups is a small plugin tree discovered by "cliwire plugins". It
// shows each declaration shape: a group, commands declared as variables and
// factories, a command wired into its group by hand and a viewset.
//
// Discovery finds the markers in the source and binds the names through the
// registrations made in init.
package groups
