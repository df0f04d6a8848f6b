// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package pathref converts filesystem paths into dotted module references and
// enumerates the candidate plugin directories beneath a plugin root.
package pathref
