// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package scan

import (
	"go/ast"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Directive kinds.
const (
	KindGroup   = "group"
	KindCommand = "command"
	KindViewset = "viewset"
)

// directivePrefix introduces every marker comment.
const directivePrefix = "//cli:"

// directive is the parsed form of a marker comment such as
// "//cli:viewset Inspector".
type directive struct {
	Kind string   `"cli" ":" @Ident`
	Args []string `@Ident*`
}

var directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[:]`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

var directiveParser = participle.MustBuild[directive](
	participle.Lexer(directiveLexer),
	participle.Elide("Whitespace"),
)

// parseDirective parses one comment line. ok is false for ordinary comments
// and for malformed markers.
func parseDirective(text string) (directive, bool) {
	if !strings.HasPrefix(text, directivePrefix) {
		return directive{}, false
	}
	d, err := directiveParser.ParseString("", strings.TrimSpace(strings.TrimPrefix(text, "//")))
	if err != nil {
		return directive{}, false
	}
	if len(d.Args) == 0 {
		d.Args = nil
	}
	switch d.Kind {
	case KindGroup, KindCommand:
		return *d, true
	case KindViewset:
		return *d, len(d.Args) == 1
	default:
		return directive{}, false
	}
}

// directives returns the markers found in a declaration's doc comment.
func directives(doc *ast.CommentGroup) []directive {
	if doc == nil {
		return nil
	}
	var out []directive
	for _, c := range doc.List {
		if d, ok := parseDirective(c.Text); ok {
			out = append(out, d)
		}
	}
	return out
}
