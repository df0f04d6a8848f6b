// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"
)

// sortKey is one parsed element of a sort spec.
type sortKey struct {
	field         string
	descending    bool
	caseSensitive bool
}

// parseSortSpec parses a comma separated list of keys. A leading "-" sorts
// descending and a leading "!" compares case sensitively; "-!" combines both.
func parseSortSpec(spec string) []sortKey {
	var keys []sortKey
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		var k sortKey
		if strings.HasPrefix(field, "-") {
			field = strings.TrimPrefix(field, "-")
			k.descending = true
		}
		if strings.HasPrefix(field, "!") {
			field = strings.TrimPrefix(field, "!")
			k.caseSensitive = true
		}
		if field == "" {
			continue
		}
		k.field = field
		keys = append(keys, k)
	}
	return keys
}

// SortDataset stably sorts rows by spec. Numeric values compare as numbers,
// everything else as strings.
func SortDataset(rows []map[string]interface{}, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			if c := compare(rows[i][k.field], rows[j][k.field], k.caseSensitive); c != 0 {
				if k.descending {
					return c > 0
				}
				return c < 0
			}
		}
		return false
	})
}

func compare(a, b interface{}, caseSensitive bool) int {
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}

	as, bs := InterfaceToString(a), InterfaceToString(b)
	if !caseSensitive {
		as, bs = strings.ToLower(as), strings.ToLower(bs)
	}
	return strings.Compare(as, bs)
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
