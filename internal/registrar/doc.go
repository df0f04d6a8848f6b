// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package registrar discovers plugin commands below a directory tree and
// attaches them to a parent command.
//
// A load call finds candidate directories, scans their source files for
// declared and excluded names, subtracts the exclusion union of each
// directory, then binds the remaining (module, symbol) targets through a
// binder.Registry in discovery order. Every problem along the way becomes a
// diag.Diagnostic; nothing short of a programming error aborts a load.
package registrar
