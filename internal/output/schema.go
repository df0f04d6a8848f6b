// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/tfctl/cliwire/internal/log"
)

// maxSchemaDepth limits how far nested structs are walked.
const maxSchemaDepth = 1

// DumpSchema writes the sorted json attribute names of typ, nested struct
// attributes joined with a dot, to w. If w is nil, os.Stdout is used.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	for typ.Kind() == reflect.Pointer || typ.Kind() == reflect.Slice {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		log.Debugf("no schema for non-struct type %s", typ)
		return
	}

	names := schemaWalker("", typ, 0)
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}

// schemaWalker returns the json names of the exported fields of typ.
func schemaWalker(holder string, typ reflect.Type, depth int) []string {
	var names []string
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		if holder != "" {
			name = holder + "." + name
		}
		names = append(names, name)

		ft := field.Type
		for ft.Kind() == reflect.Pointer || ft.Kind() == reflect.Slice {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && depth < maxSchemaDepth {
			names = append(names, schemaWalker(name, ft, depth+1)...)
		}
	}
	return names
}
