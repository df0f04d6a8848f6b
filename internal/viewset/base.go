// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package viewset

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ErrPayloadNotMap is returned by ImportPayload for a payload that is not a
// mapping.
var ErrPayloadNotMap = errors.New("viewset payload is not a map")

// Viewset is implemented by pointers to types embedding Base.
type Viewset interface {
	// Define registers the commands the viewset offers.
	Define(b *Builder)
	// Convert runs once the group is assembled. Base provides a no-op.
	Convert() error

	base() *Base
}

// Base holds the state shared by every viewset.
type Base struct {
	// Name is the default group name.
	Name  string
	Usage string
	// Version is printed by the command_version built-in.
	Version string
	// Viewset is the opaque configuration payload, typically imported onto
	// attributes by Convert.
	Viewset any
	// Commands is the allow-list. A registered method is kept when its name
	// contains one of the entries; a nil allow-list keeps nothing.
	Commands []string
	// HiddenCommands marks kept commands hidden from help output.
	HiddenCommands []string

	group string
	attrs map[string]any
	self  Viewset
}

// baseFields are the Base fields list reports only when asked for them.
var baseFields = map[string]bool{
	"Name": true, "Usage": true, "Version": true, "Viewset": true,
	"Commands": true, "HiddenCommands": true,
}

func (b *Base) base() *Base { return b }

// Convert is the default hook and does nothing.
func (b *Base) Convert() error { return nil }

// SetAttr stores an instance attribute.
func (b *Base) SetAttr(name string, value any) {
	if b.attrs == nil {
		b.attrs = map[string]any{}
	}
	b.attrs[name] = value
}

// Attr returns an instance attribute or exported field. Attributes shadow
// fields of the same name. A dotted name drills into the attribute named by
// its first segment, or into the payload when there is no such attribute.
func (b *Base) Attr(name string) (any, bool) {
	if v, ok := b.attrs[name]; ok {
		return v, true
	}
	if v, ok := b.field(name); ok {
		return v, true
	}

	head, rest, dotted := strings.Cut(name, ".")
	if !dotted {
		return nil, false
	}
	if v, ok := b.Attr(head); ok {
		return drillValue(v, rest)
	}
	return drillValue(b.Viewset, name)
}

// AttrNames returns the sorted attribute and exported field names. Base's
// own fields are included only when named is true.
func (b *Base) AttrNames(named bool) []string {
	seen := map[string]bool{}
	for name := range b.attrs {
		seen[name] = true
	}
	if self := b.selfValue(); self.IsValid() {
		collectFields(self.Type(), seen)
	} else {
		collectFields(reflect.TypeOf(*b), seen)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		if baseFields[name] && !named {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ImportPayload copies the keys of a map payload onto attributes. A nil
// payload is a no-op.
func (b *Base) ImportPayload() error {
	switch p := b.Viewset.(type) {
	case nil:
		return nil
	case map[string]any:
		for k, v := range p {
			b.SetAttr(k, v)
		}
	case map[any]any:
		for k, v := range p {
			b.SetAttr(fmt.Sprint(k), v)
		}
	default:
		return fmt.Errorf("%w: %T", ErrPayloadNotMap, b.Viewset)
	}
	return nil
}

// field returns the exported field name of the outermost viewset value.
func (b *Base) field(name string) (any, bool) {
	v := b.selfValue()
	if !v.IsValid() {
		v = reflect.ValueOf(b).Elem()
	}
	sf, ok := v.Type().FieldByName(name)
	if !ok || !sf.IsExported() || sf.Anonymous {
		return nil, false
	}
	return v.FieldByIndex(sf.Index).Interface(), true
}

func (b *Base) selfValue() reflect.Value {
	if b.self == nil {
		return reflect.Value{}
	}
	v := reflect.ValueOf(b.self)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}
	}
	return v
}

// collectFields adds the exported field names of t, descending into
// embedded structs.
func collectFields(t reflect.Type, seen map[string]bool) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				collectFields(ft, seen)
			}
			continue
		}
		if sf.IsExported() {
			seen[sf.Name] = true
		}
	}
}
