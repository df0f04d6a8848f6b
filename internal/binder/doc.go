// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package binder resolves (module reference, symbol) pairs to live commands.
//
// Plugin packages register their symbols at start-up, usually from init,
// under the same dotted module reference the scanner computes for their
// source file:
//
//	func init() {
//		binder.Provide("plugins.demo.groups", "Greet", Greet)
//	}
//
// Binding is then a table lookup with the failure modes of a dynamic import:
// an unknown module, a missing or nil symbol, or a module whose loader fails.
package binder
