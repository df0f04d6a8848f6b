// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/cliwire/internal/config"
	"github.com/tfctl/cliwire/internal/diag"
)

const initSource = `package groups

import "github.com/urfave/cli/v3"

//cli:group
func G1() *cli.Command {
	return &cli.Command{Name: "g1"}
}

// C1 is wired by hand below.
//
//cli:command
var C1 = &cli.Command{Name: "c1"}

func init() {
	parent := G1()
	parent.Attach(C1, "ignored")
}
`

const extraSource = `package groups

import "github.com/urfave/cli/v3"

//cli:command
func C2() *cli.Command { return &cli.Command{Name: "c2"} }
`

// writeFiles creates files (slash-separated names) beneath dir.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
}

func TestScanDirScenario(t *testing.T) {
	t.Setenv("CLIWIRE_CACHE", "0")
	root := t.TempDir()
	dir := filepath.Join(root, "plugins", "a", "groups")
	writeFiles(t, dir, map[string]string{
		"init.go":       initSource,
		"extra.go":      extraSource,
		"extra_test.go": "package groups\n//cli:command\nvar Nope = 1\n",
		"README.md":     "//cli:command\n",
	})

	records, diags, err := New(Options{}).ScanDir(dir, root)
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, records, 2)

	// Name order: extra.go before init.go.
	assert.Equal(t, "plugins.a.groups.extra", records[0].Module)
	assert.Equal(t, []string{"C2"}, records[0].Declared)
	assert.Empty(t, records[0].Excluded)

	assert.Equal(t, "plugins.a.groups", records[1].Module)
	assert.Equal(t, []string{"G1", "C1"}, records[1].Declared)
	assert.Equal(t, []string{"C1"}, records[1].Excluded)
	assert.Positive(t, records[1].Size)
}

func TestScanFileDeclarations(t *testing.T) {
	src := `package groups

//cli:command
func Late() {}

//cli:group
var Early = 1

var (
	//cli:command
	A = 1
	B = 2
	//cli:group
	C, D = 3, 4
)

//cli:command
func (r *recv) Method() {}

//cli:command
//cli:group
func Both() {}

// ordinary comment mentioning cli:command
func Plain() {}

//cli:commandx
func Unknown() {}
`
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"x.go": src})

	rec, diags := New(Options{}).ScanFile(filepath.Join(dir, "x.go"))
	assert.Empty(t, diags)
	assert.Equal(t, []string{"Early", "C", "D", "Both", "Late", "A"}, rec.Declared)
}

func TestScanFileViewsetExpansion(t *testing.T) {
	src := `package groups

import "example.com/x/viewset"

type Inspector struct {
	viewset.Abstract
	Region string
}

type NotAViewset struct {
	Other string
}

type PtrViewset struct {
	*viewset.Base
}

//cli:viewset Inspector
func InspectorGroup() {}

//cli:viewset NotAViewset
func Ignored() {}

//cli:viewset PtrViewset
var PtrGroup = 1

//cli:viewset Missing
var AlsoIgnored = 1

//cli:command
func Cmd() {}
`
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"vs.go": src})

	rec, _ := New(Options{}).ScanFile(filepath.Join(dir, "vs.go"))
	assert.Equal(t, []string{"Cmd", "InspectorGroup", "PtrGroup"}, rec.Declared)
}

func TestScanFileCustomViewsetBase(t *testing.T) {
	src := `package groups

type Mine struct{ kit.Bundle }

//cli:viewset Mine
func MineGroup() {}
`
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"vs.go": src})

	rec, _ := New(Options{ViewsetBases: []string{"kit.Bundle"}}).ScanFile(filepath.Join(dir, "vs.go"))
	assert.Equal(t, []string{"MineGroup"}, rec.Declared)

	rec, _ = New(Options{}).ScanFile(filepath.Join(dir, "vs.go"))
	assert.Empty(t, rec.Declared)
}

func TestScanFileExclusions(t *testing.T) {
	src := `package groups

func wire(root, other *cli.Command) {
	root.Attach(C1)
	root.AddCommand(C2(), "x")
	other.Commands = append(other.Commands, C3, C4())
	root.Attach(&C5)
	root.Attach(pkg.Qualified)
	root.Register(NotAnAttach)
	list = append(list, NotCommands)
	root.Attach(C1Suffix)
}
`
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"w.go": src})

	rec, _ := New(Options{}).ScanFile(filepath.Join(dir, "w.go"))
	assert.Equal(t, []string{"C1", "C1Suffix", "C2", "C3", "C4", "C5"}, rec.Excluded)

	rec, _ = New(Options{AttachMethods: []string{"Register"}}).ScanFile(filepath.Join(dir, "w.go"))
	assert.Equal(t, []string{"C3", "C4", "NotAnAttach"}, rec.Excluded)
}

func TestScanFileSyntaxError(t *testing.T) {
	src := `package groups

//cli:command
func Good() {}

func Broken( {
`
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"bad.go": src})

	rec, diags := New(Options{}).ScanFile(filepath.Join(dir, "bad.go"))
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeScanParse, diags[0].Code)
	assert.Equal(t, diag.SeverityWarning, diags[0].Severity)
	assert.Contains(t, rec.Declared, "Good")
}

func TestScanDirUnreadableFile(t *testing.T) {
	t.Setenv("CLIWIRE_CACHE", "0")
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"ok.go": extraSource})
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing-target.go"), filepath.Join(dir, "dangling.go")))

	records, diags, err := New(Options{}).ScanDir(dir, "")
	require.NoError(t, err)
	require.Len(t, records, 2, "unreadable files still yield an empty record")

	assert.Equal(t, filepath.Join(dir, "dangling.go"), records[0].Path)
	assert.Empty(t, records[0].Declared)
	assert.Equal(t, []string{"C2"}, records[1].Declared)

	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeScanIO, diags[0].Code)
	assert.Equal(t, filepath.Join(dir, "dangling.go"), diags[0].Path)
}

func TestScanDirMissing(t *testing.T) {
	_, _, err := New(Options{}).ScanDir(filepath.Join(t.TempDir(), "nope"), "")
	assert.Error(t, err)
}

func TestModuleFor(t *testing.T) {
	s := New(Options{})
	assert.Equal(t, "a.groups", s.ModuleFor(filepath.FromSlash("/r/a/groups/init.go"), filepath.FromSlash("/r")))
	assert.Equal(t, "a.groups.extra", s.ModuleFor(filepath.FromSlash("/r/a/groups/extra.go"), filepath.FromSlash("/r")))

	s = New(Options{IndexFile: "groups.go"})
	assert.Equal(t, "a.groups", s.ModuleFor(filepath.FromSlash("/r/a/groups/groups.go"), filepath.FromSlash("/r")))
	assert.Equal(t, "a.groups.init", s.ModuleFor(filepath.FromSlash("/r/a/groups/init.go"), filepath.FromSlash("/r")))
}

func TestScanFileCache(t *testing.T) {
	t.Setenv("CLIWIRE_CACHE_DIR", t.TempDir())
	t.Setenv("CLIWIRE_CACHE", "")

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"init.go": initSource})
	path := filepath.Join(dir, "init.go")

	s := New(Options{Cache: true})
	first, diags := s.ScanFile(path)
	require.Empty(t, diags)

	info, err := os.Stat(path)
	require.NoError(t, err)
	cached, ok := s.readCache(path, info)
	require.True(t, ok, "first scan populates the cache")
	assert.Equal(t, first.Declared, cached.Declared)

	second, _ := s.ScanFile(path)
	assert.Equal(t, first, second)

	// A different option set must not reuse the entry.
	other := New(Options{Cache: true, AttachMethods: []string{"Other"}})
	_, ok = other.readCache(path, info)
	assert.False(t, ok)
}

func TestScanFileCacheReplacesStaleEntry(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("CLIWIRE_CACHE_DIR", cacheDir)
	t.Setenv("CLIWIRE_CACHE", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "extra.go")
	s := New(Options{Cache: true})

	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 5; i++ {
		src := "package groups\n"
		for j := 1; j <= i; j++ {
			src += fmt.Sprintf("\n//cli:command\nvar C%d = 1\n", j)
		}
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
		mtime := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mtime, mtime))

		rec, diags := s.ScanFile(path)
		require.Empty(t, diags)
		assert.Len(t, rec.Declared, i, "edit %d is scanned, not served from cache", i)
	}

	entries, err := os.ReadDir(filepath.Join(cacheDir, "scan"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPurgeCache(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("CLIWIRE_CACHE_DIR", cacheDir)
	t.Setenv("CLIWIRE_CACHE", "")

	saved := config.Config
	t.Cleanup(func() { config.Config = saved })
	config.Config = config.Type{Data: map[string]interface{}{
		"cache": map[string]interface{}{"clean": 1},
	}}

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"init.go": initSource, "extra.go": extraSource})
	s := New(Options{Cache: true})
	_, diags, err := s.ScanDir(dir, dir)
	require.NoError(t, err)
	require.Empty(t, diags)

	entries, err := os.ReadDir(filepath.Join(cacheDir, "scan"))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Age one entry past the configured window, as if its source was removed.
	old := time.Now().Add(-2 * time.Hour)
	stale := filepath.Join(cacheDir, "scan", entries[0].Name())
	require.NoError(t, os.Chtimes(stale, old, old))

	require.NoError(t, PurgeCache())

	entries, err = os.ReadDir(filepath.Join(cacheDir, "scan"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.NoFileExists(t, stale)
}

func TestIsSource(t *testing.T) {
	assert.True(t, IsSource("init.go"))
	assert.False(t, IsSource("init_test.go"))
	assert.False(t, IsSource("init.py"))
}
