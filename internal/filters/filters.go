// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tfctl/cliwire/internal/log"
)

// filterRegex splits an expression into key, optional negated operator and
// target. A lone "!" negates a bare key.
var filterRegex = regexp.MustCompile(`^([^!=~^<>@/]*)(!?[=~^<>@/]|!)?(.*)$`)

// Filter is one parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"key"`
	Negate  bool   `yaml:"negate" json:"negate"`
	Operand string `yaml:"operand" json:"operand"`
	Value   string `yaml:"value" json:"value"`
}

// BuildFilters parses a --filter value. Expressions without a key are
// logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv("CLIWIRE_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, expr := range strings.Split(spec, delim) {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(expr)
		key := strings.TrimSpace(parts[1])
		if key == "" {
			log.Errorf("invalid filter: empty key in %s", expr)
			continue
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: strings.TrimPrefix(operand, "!"),
			Value:   parts[3],
		})
	}

	return filters
}

// Apply returns the rows passing every expression of spec, in their
// original order.
func Apply(rows []map[string]interface{}, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return rows
	}

	known := map[string]bool{}
	for _, row := range rows {
		for k := range row {
			known[k] = true
		}
	}

	var active []Filter
	for _, f := range filters {
		if len(rows) > 0 && !known[f.Key] {
			log.Warnf("filter key not found: %s", f.Key)
			fmt.Fprintf(os.Stderr, "warning: filter key not found: %s\n", f.Key)
			continue
		}
		active = append(active, f)
	}

	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		if Match(row, active) {
			out = append(out, row)
		}
	}
	return out
}

// Match reports whether row passes every filter.
func Match(row map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		if !check(row[f.Key], f) {
			return false
		}
	}
	return true
}

func check(value interface{}, f Filter) bool {
	if f.Operand == "" {
		return present(value) != f.Negate
	}

	switch v := value.(type) {
	case nil:
		return f.Negate
	case string:
		return checkStringOperand(v, f)
	case bool:
		return checkStringOperand(strconv.FormatBool(v), f)
	case []string:
		return checkListOperand(v, f)
	default:
		if num, ok := toFloat64(v); ok {
			return checkNumericOperand(num, f)
		}
		return checkStringOperand(fmt.Sprint(v), f)
	}
}

func present(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case []string:
		return len(v) > 0
	default:
		return true
	}
}

// checkListOperand treats @ as membership and compares the joined list for
// every other operand.
func checkListOperand(values []string, f Filter) bool {
	if f.Operand == "@" {
		for _, v := range values {
			if v == f.Value {
				return !f.Negate
			}
		}
		return f.Negate
	}
	return checkStringOperand(strings.Join(values, ","), f)
}

// checkNumericOperand compares numerically. A target that is not a number
// fails the row.
func checkNumericOperand(value float64, f Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(f.Value), 64)
	if err != nil {
		log.Errorf("invalid numeric value: %s", f.Value)
		return false
	}

	switch f.Operand {
	case "=":
		return (value == tgt) == !f.Negate
	case ">":
		return (value > tgt) == !f.Negate
	case "<":
		return (value < tgt) == !f.Negate
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), f)
	}
}

func checkStringOperand(value string, f Filter) bool {
	switch f.Operand {
	case "=":
		return (value == f.Value) == !f.Negate
	case "~":
		return strings.EqualFold(value, f.Value) == !f.Negate
	case "^":
		return strings.HasPrefix(value, f.Value) == !f.Negate
	case ">":
		return (value > f.Value) == !f.Negate
	case "<":
		return (value < f.Value) == !f.Negate
	case "@":
		return strings.Contains(value, f.Value) == !f.Negate
	case "/":
		matched, err := regexp.MatchString(f.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", f.Value)
			return false
		}
		return matched == !f.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", f.Operand)
		return false
	}
}

// toFloat64 normalizes the numeric types found in report rows.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
