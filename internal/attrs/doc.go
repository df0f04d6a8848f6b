// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package attrs parses the --attrs flag that shapes text reports.
//
// Each comma separated spec is key[:title[:transform]]. A leading "!" hides
// the key, "*" applies its transform to every column. Transforms are
// letters and a number, last one wins:
//
//   - l, u : lower or upper case
//   - N    : truncate to N characters
//   - -N   : keep N characters around a ".." in the middle
//
// Examples:
//
//   - "module:MOD:u" : upper-cased module column titled MOD
//   - "!excluded"    : hide the excluded column
//   - "*::20"        : truncate every column to 20 characters
package attrs
