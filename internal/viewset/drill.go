// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package viewset

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var segmentRe = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+|\*)?\])?$`)

// Drill navigates a JSON document with a dot path. A segment may carry an
// array index (tags[1]); an unindexed single element array is unwrapped and
// [] or [*] keeps the whole array.
func Drill(doc string, path string) gjson.Result {
	current := gjson.Parse(doc)

	for _, seg := range strings.Split(path, ".") {
		m := segmentRe.FindStringSubmatch(seg)
		if m == nil {
			return gjson.Result{}
		}

		val := current.Get(m[1])
		if val.IsArray() {
			arr := val.Array()
			switch idx := m[3]; {
			case idx == "" && m[2] == "" && len(arr) == 1:
				val = arr[0]
			case idx == "" || idx == "*":
			default:
				i, err := strconv.Atoi(idx)
				if err != nil || i >= len(arr) {
					return gjson.Result{}
				}
				val = arr[i]
			}
		}
		current = val
	}

	return current
}

// drillValue drills into any JSON-encodable value.
func drillValue(v any, path string) (any, bool) {
	if v == nil {
		return nil, false
	}
	doc, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	res := Drill(string(doc), path)
	if !res.Exists() {
		return nil, false
	}
	return res.Value(), true
}
