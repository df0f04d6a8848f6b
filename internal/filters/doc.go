// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows report rows with --filter expressions.
//
// An expression is key, operator and target. Expressions are joined with a
// comma, or with CLIWIRE_FILTER_DELIM when the targets contain commas. A row
// is kept when it passes every expression.
//
// Operators, each of which may be negated with a leading "!":
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than, numeric for numbers
//   - > : greater than, numeric for numbers
//   - @ : substring, or membership for list values
//   - / : regular expression match
//
// Examples:
//
//   - "module^plugins.demo" : modules below plugins.demo
//   - "declared@Echo" : files declaring Echo
//   - "size>1024" : files larger than 1 KiB
//   - "excluded!=" : files that wire at least one command by hand
//
// A bare key keeps rows where the key is present and not empty, and "key!"
// keeps the others. Unknown keys are reported and ignored.
package filters
