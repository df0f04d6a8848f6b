// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package viewset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/cliwire/internal/config"
)

// inspector is an Abstract viewset with two extra commands.
type inspector struct {
	Abstract
	Region string
}

func (i *inspector) Define(b *Builder) {
	i.Abstract.Define(b)
	b.Command("show_region", &cli.Command{Name: "region"}, i.region)
	b.Command("secret_dump", nil, i.region)
}

func (i *inspector) Convert() error {
	if err := i.ImportPayload(); err != nil {
		return err
	}
	if r, ok := i.Attr("region"); ok {
		i.Region = fmt.Sprint(r)
	}
	return nil
}

func (i *inspector) region(_ context.Context, cmd *cli.Command) error {
	_, err := fmt.Fprintln(cmd.Root().Writer, i.Region)
	return err
}

// bare embeds Base and has no allow-list.
type bare struct {
	Base
}

func (b *bare) Define(bld *Builder) {
	bld.Command("echo", nil, nil)
	bld.Command("other", nil, nil)
}

type failing struct {
	Base
}

func (f *failing) Define(*Builder) {}

func (f *failing) Convert() error { return errors.New("bad payload") }

func commandNames(group *cli.Command) []string {
	var out []string
	for _, c := range group.Commands {
		out = append(out, c.Name)
	}
	return out
}

// run builds a fresh group from v, mounts it below a root and executes args
// against it.
func run(t *testing.T, v Viewset, opts []Option, args ...string) string {
	t.Helper()
	group, err := Build(v, opts...)
	require.NoError(t, err)
	var buf bytes.Buffer
	root := &cli.Command{Name: "app", Writer: &buf, Commands: []*cli.Command{group}}
	require.NoError(t, root.Run(context.Background(), append([]string{"app", group.Name}, args...)))
	return buf.String()
}

func TestBuildAllowList(t *testing.T) {
	tests := []struct {
		name   string
		v      Viewset
		opts   []Option
		want   []string
		hidden []string
	}{
		{
			name: "no allow-list attaches nothing",
			v:    &bare{Base{Name: "bare"}},
			want: nil,
		},
		{
			name: "abstract defaults",
			v:    &inspector{Abstract: Abstract{Base{Name: "insp"}}},
			want: []string{"echo", "list", "command_version"},
		},
		{
			name: "substring match",
			v:    &inspector{},
			opts: []Option{WithName("insp"), WithCommands("region")},
			want: []string{"region"},
		},
		{
			name:   "hidden still attached",
			v:      &inspector{},
			opts:   []Option{WithName("insp"), WithCommands("show", "dump"), WithHidden("dump")},
			want:   []string{"region", "secret_dump"},
			hidden: []string{"secret_dump"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group, err := Build(tt.v, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, commandNames(group))

			var hidden []string
			for _, c := range group.Commands {
				if c.Hidden {
					hidden = append(hidden, c.Name)
				}
			}
			assert.Equal(t, tt.hidden, hidden)
		})
	}
}

func TestUnmatched(t *testing.T) {
	var b Builder
	(&Abstract{}).Define(&b)
	require.Equal(t, []string{"echo", "list", "version"}, b.Methods())

	tests := []struct {
		name    string
		entries []string
		want    []string
	}{
		{"all match", []string{"echo", "list", "version"}, nil},
		{"substring", []string{"ver", "ech"}, nil},
		{"empty entries skipped", []string{"", "list"}, nil},
		{"typo", []string{"echo", "lst", "show_"}, []string{"lst", "show_"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unmatched(tt.entries, b.Methods()))
		})
	}
}

func TestBuildGroupName(t *testing.T) {
	group, err := Build(&inspector{Abstract: Abstract{Base{Name: "declared"}}})
	require.NoError(t, err)
	assert.Equal(t, "declared", group.Name)

	group, err = Build(&inspector{Abstract: Abstract{Base{Name: "declared"}}}, WithName("explicit"))
	require.NoError(t, err)
	assert.Equal(t, "explicit", group.Name)
}

func TestBuildIsFresh(t *testing.T) {
	v := &inspector{Abstract: Abstract{Base{Name: "insp"}}}
	first, err := Build(v)
	require.NoError(t, err)
	second, err := Build(v)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	require.Len(t, second.Commands, len(first.Commands))
	for i := range first.Commands {
		assert.NotSame(t, first.Commands[i], second.Commands[i])
	}
}

func TestConvertVisibleAfterBuild(t *testing.T) {
	v := &inspector{Abstract: Abstract{Base{
		Name:     "insp",
		Commands: []string{"region", "echo"},
		Viewset:  map[string]any{"region": "eu-west-1"},
	}}}

	_, ok := v.Attr("region")
	assert.False(t, ok, "payload must not be imported before Build")

	assert.Equal(t, "eu-west-1\n", run(t, v, nil, "region"))
	assert.Equal(t, "'region' eu-west-1\n", run(t, v, nil, "echo", "-a", "region"))
}

func TestConvertErrorAbortsBuild(t *testing.T) {
	group, err := Build(&failing{Base{Name: "f"}})
	assert.Nil(t, group)
	assert.ErrorContains(t, err, "bad payload")
}

func TestBuildNil(t *testing.T) {
	_, err := Build(nil)
	assert.Error(t, err)
}

func TestFromCommand(t *testing.T) {
	v := &inspector{Abstract: Abstract{Base{Name: "insp"}}}
	group, err := Build(v)
	require.NoError(t, err)

	got, ok := FromCommand(group.Commands[0])
	require.True(t, ok)
	assert.Same(t, v, got)

	_, ok = FromCommand(&cli.Command{Name: "plain"})
	assert.False(t, ok)
}

func TestEchoAttr(t *testing.T) {
	v := &inspector{Abstract: Abstract{Base{Name: "insp"}}, Region: "us-east-1"}
	_, err := Build(v,
		WithAttr("tags", []string{"a", "b"}),
		WithAttr("labels", map[string]any{"b": 1, "a": "x"}),
		WithAttr("empty", nil),
	)
	require.NoError(t, err)

	tests := []struct {
		name string
		attr string
		opts EchoOptions
		want string
	}{
		{"scalar field", "Region", EchoOptions{}, "'Region' us-east-1\n"},
		{"promoted field", "Name", EchoOptions{}, "'Name' insp\n"},
		{"slice joined", "tags", EchoOptions{Delimiter: ","}, "'tags' a,b\n"},
		{"map as json", "labels", EchoOptions{}, "'labels' {\n  \"a\": \"x\",\n  \"b\": 1\n}\n"},
		{"nil value", "empty", EchoOptions{}, "'empty' \n"},
		{"with type", "Region", EchoOptions{ShowType: true}, "'Region' 'string' us-east-1\n"},
		{"name only", "Region", EchoOptions{NameOnly: true, ShowType: true}, "'Region' \n"},
		{"missing", "nope", EchoOptions{}, "Error: Unable to find attribute with name 'nope'\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			v.EchoAttr(&buf, tt.attr, tt.opts)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestEchoCommandDelimiter(t *testing.T) {
	v := &inspector{Abstract: Abstract{Base{Name: "insp"}}}
	opts := []Option{WithAttr("tags", []string{"a", "b"})}

	assert.Equal(t, "'tags' a\nb\n", run(t, v, opts, "echo", "--attribute", "tags"))
	assert.Equal(t, "'tags' a|b\n", run(t, v, opts, "echo", "-a", "tags", "-ld", "|"))
}

func TestListCommand(t *testing.T) {
	v := &inspector{Abstract: Abstract{Base{Name: "insp"}}, Region: "us-east-1"}
	opts := []Option{WithAttr("zone", "b")}

	assert.Equal(t, "'Region' \n'zone' \n", run(t, v, opts, "list"))
	assert.Equal(t, "'Region' us-east-1\n'zone' b\n", run(t, v, opts, "list", "--values"))
	assert.Equal(t, "'Region' 'string' us-east-1\n'zone' 'string' b\n", run(t, v, opts, "list", "-v", "-t"))

	named := run(t, v, opts, "list", "--named")
	assert.Contains(t, named, "'Name' \n")
	assert.Contains(t, named, "'HiddenCommands' \n")
}

func TestVersionCommand(t *testing.T) {
	v := &inspector{Abstract: Abstract{Base{Name: "insp"}}}
	assert.Equal(t, "'Version' 1.2.3\n", run(t, v, []Option{WithVersion("1.2.3")}, "command_version"))

	w := &inspector{Abstract: Abstract{Base{Name: "insp"}}}
	assert.Regexp(t, `^'Version' \S+\n$`, run(t, w, nil, "command_version"))
}

func TestAttrDotted(t *testing.T) {
	payload := map[string]any{"net": map[string]any{"cidr": "10.0.0.0/8"}, "tags": []any{"a", "b"}}
	v := &inspector{Abstract: Abstract{Base{Name: "insp", Viewset: payload}}}

	got, ok := v.Attr("net.cidr")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.0/8", got)

	_, err := Build(v)
	require.NoError(t, err)

	v.SetAttr("net", map[string]any{"cidr": "192.168.0.0/16"})
	got, ok = v.Attr("net.cidr")
	require.True(t, ok)
	assert.Equal(t, "192.168.0.0/16", got)

	got, ok = v.Attr("tags[1]")
	assert.False(t, ok, "undotted names are not drilled")
	assert.Nil(t, got)
}

func TestImportPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    map[string]any
		wantErr bool
	}{
		{"nil", nil, nil, false},
		{"string keys", map[string]any{"a": 1}, map[string]any{"a": 1}, false},
		{"any keys", map[any]any{"b": true}, map[string]any{"b": true}, false},
		{"not a map", []string{"x"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Base{Viewset: tt.payload}
			err := b.ImportPayload()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPayloadNotMap)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.attrs)
		})
	}
}

func TestWithConfigPayload(t *testing.T) {
	path, err := filepath.Abs(filepath.Join("..", "config", "testdata", "discovery.yaml"))
	require.NoError(t, err)
	_, err = config.Load(path)
	require.NoError(t, err)
	t.Cleanup(func() { config.Config = config.Type{} })

	v := &inspector{Abstract: Abstract{Base{Name: "insp"}}}
	_, err = Build(v, WithConfigPayload("inspector"))
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", v.Region)

	w := &inspector{Abstract: Abstract{Base{Name: "insp", Viewset: map[string]any{"region": "kept"}}}}
	_, err = Build(w, WithConfigPayload("absent"))
	require.NoError(t, err)
	assert.Equal(t, "kept", w.Region)
}
