// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package diag holds the structured diagnostics produced while discovering
// and binding plugin commands. Diagnostics are returned to callers rather
// than printed so the CLI layer decides how to render them.
package diag

import (
	"fmt"
	"strings"

	"github.com/tfctl/cliwire/internal/log"
)

const (
	// SeverityInfo marks progress notes, such as a successful binding.
	SeverityInfo Severity = "info"
	// SeverityWarning marks a recoverable problem; the affected file or
	// symbol was skipped.
	SeverityWarning Severity = "warning"
)

// Diagnostic codes.
const (
	CodeScanIO          = "scan_io_error"
	CodeScanParse       = "scan_parse_warning"
	CodeModuleNotFound  = "module_not_found"
	CodeSymbolMissing   = "symbol_missing"
	CodeModuleLoadError = "module_load_error"
	CodeInvalidPath     = "invalid_path"
	CodeBound           = "bound"
)

type (
	// Severity is the diagnostic level.
	Severity string

	// Diagnostic describes one non-fatal event of a scan or bind.
	Diagnostic struct {
		Severity Severity `json:"severity" yaml:"severity"`
		Code     string   `json:"code" yaml:"code"`
		Module   string   `json:"module,omitempty" yaml:"module,omitempty"`
		Symbol   string   `json:"symbol,omitempty" yaml:"symbol,omitempty"`
		Path     string   `json:"path,omitempty" yaml:"path,omitempty"`
		Message  string   `json:"message" yaml:"message"`
		Cause    error    `json:"-" yaml:"-"`
	}

	// List is an append-only collection of diagnostics.
	List []Diagnostic
)

// Warning builds a warning diagnostic.
func Warning(code, message string, cause error) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Cause: cause}
}

// String renders the diagnostic on one line.
func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s]", d.Severity, d.Code)
	if d.Module != "" {
		fmt.Fprintf(&b, " %s", d.Module)
		if d.Symbol != "" {
			fmt.Fprintf(&b, ".%s", d.Symbol)
		}
	} else if d.Symbol != "" {
		fmt.Fprintf(&b, " %s", d.Symbol)
	}
	if d.Path != "" {
		fmt.Fprintf(&b, " (%s)", d.Path)
	}
	fmt.Fprintf(&b, ": %s", d.Message)
	if d.Cause != nil {
		fmt.Fprintf(&b, ": %v", d.Cause)
	}
	return b.String()
}

// Warnings returns only the warning diagnostics.
func (l List) Warnings() List {
	var out List
	for _, d := range l {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// Codes returns the code of every diagnostic in order.
func (l List) Codes() []string {
	codes := make([]string, len(l))
	for i, d := range l {
		codes[i] = d.Code
	}
	return codes
}

// Emit logs every diagnostic. Warnings go out at warn level, everything else
// at info level, so verbose callers see bindings as well.
func (l List) Emit() {
	for _, d := range l {
		fields := map[string]interface{}{"code": d.Code}
		if d.Module != "" {
			fields["module"] = d.Module
		}
		if d.Symbol != "" {
			fields["symbol"] = d.Symbol
		}
		entry := log.WithFields(fields)
		if d.Cause != nil {
			entry = entry.WithError(d.Cause)
		}
		if d.Severity == SeverityWarning {
			entry.Warn(d.Message)
		} else {
			entry.Info(d.Message)
		}
	}
}
