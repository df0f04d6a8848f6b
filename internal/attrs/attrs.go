// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tfctl/cliwire/internal/log"
)

// Global is the key whose transform applies to every attribute.
const Global = "*"

var lengthRe = regexp.MustCompile(`-?\d+`)

// Attr is one report column.
type Attr struct {
	// Key of the row value.
	Key string `yaml:"key" json:"key"`
	// Title used when titles are shown. Defaults to Key.
	Title string `yaml:"title" json:"title"`
	// Include is false for columns that are only parsed to be hidden.
	Include bool `yaml:"include" json:"include"`
	// TransformSpec is applied to string values.
	TransformSpec string `yaml:"transformSpec" json:"transformSpec"`
}

// Transform applies the attribute's transform spec to a string value. Other
// values are returned unchanged.
func (a *Attr) Transform(value interface{}) interface{} {
	result, ok := value.(string)
	if !ok || a.TransformSpec == "" {
		return value
	}

	// A global spec is prepended, so the attr's own case wins by appearing
	// last.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")
	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	match := lengthRe.FindAllString(a.TransformSpec, -1)
	if len(match) == 0 {
		return result
	}
	l, _ := strconv.Atoi(match[len(match)-1])
	abs := int(math.Abs(float64(l)))
	if abs == 0 || len(result) <= abs {
		return result
	}
	if l < 0 {
		keep := abs/2 - 1
		if keep < 1 {
			keep = 1
		}
		result = result[:keep] + ".." + result[len(result)-keep:]
		log.Tracef("length middle: result=%s", result)
	} else {
		result = result[:l]
		log.Tracef("length trunc: result=%s", result)
	}
	return result
}

// AttrList is the ordered set of report columns.
type AttrList []Attr

// Set parses an --attrs value. Specs naming an existing key or title update
// that attribute in place; others are appended.
func (a *AttrList) Set(value string) error {
	if value == "" || value == Global {
		return nil
	}

	const (
		keyIdx = iota
		titleIdx
		transformIdx
	)

specloop:
	for _, spec := range strings.Split(value, ",") {
		fields := strings.Split(spec, ":")
		if len(fields) > 3 {
			return fmt.Errorf("invalid attribute spec %q", spec)
		}

		attr := Attr{Include: true}
		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attribute spec %q: empty key", spec)
		}
		if attr.Key == Global {
			attr.Include = false
		}

		if len(fields) > titleIdx {
			attr.Title = strings.TrimSpace(fields[titleIdx])
		}
		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}
		log.Tracef("attr parsed: %+v", attr)

		for i := range *a {
			existing := &(*a)[i]
			if existing.Key != attr.Key && existing.Title != attr.Key {
				continue
			}
			existing.Include = attr.Include
			if attr.Title != "" {
				existing.Title = attr.Title
			}
			existing.TransformSpec = attr.TransformSpec
			continue specloop
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec prepends the transform of the "*" attribute to
// every attribute.
func (a *AttrList) SetGlobalTransformSpec() {
	spec := ""
	for _, attr := range *a {
		if attr.Key == Global {
			spec = attr.TransformSpec
			break
		}
	}
	if spec == "" {
		return
	}

	for i := range *a {
		if (*a)[i].Key != Global {
			(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
		}
	}
}

// Included returns the attributes shown in the report.
func (a AttrList) Included() AttrList {
	out := make(AttrList, 0, len(a))
	for _, attr := range a {
		if attr.Include {
			out = append(out, attr)
		}
	}
	return out
}

// String returns the list in --attrs syntax.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		key := attr.Key
		if !attr.Include && attr.Key != Global {
			key = "!" + key
		}
		result = append(result, fmt.Sprintf("%s:%s:%s", key, attr.Title, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}
