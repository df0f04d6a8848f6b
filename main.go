// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/cliwire/internal/cacheutil"
	"github.com/tfctl/cliwire/internal/command"
	"github.com/tfctl/cliwire/internal/config"
	"github.com/tfctl/cliwire/internal/log"
	"github.com/tfctl/cliwire/internal/scan"
	"github.com/tfctl/cliwire/internal/version"

	// Registers the demo plugin modules with the binder.
	_ "github.com/tfctl/cliwire/plugins/demo/groups"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v before the command and returns
// whether it was handled.
func handleVersion(args []string) bool {
	if len(args) > 1 && (args[1] == "--version" || args[1] == "-v") {
		fmt.Println(version.Version)
		return true
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// configSet returns the argument set stored under <command>.<set>.
func configSet(command, set string) []string {
	entries, _ := config.GetStringSlice(command + "." + set)
	return entries
}

// expandSets replaces the first @set argument with the entries lookup
// returns for it. Each entry is split on whitespace, so "--output json" is
// two arguments.
func expandSets(args []string, lookup func(command, set string) []string) []string {
	if len(args) < 3 {
		return args
	}

	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		if !strings.HasPrefix(a, "@") || len(a) == 1 {
			continue
		}

		var expanded []string
		for _, entry := range lookup(args[1], a[1:]) {
			expanded = append(expanded, strings.Fields(entry)...)
		}
		log.Debugf("expanded set %s: %v", a, expanded)

		out := make([]string, 0, len(args)+len(expanded))
		out = append(out, args[:i]...)
		out = append(out, expanded...)
		return append(out, args[i+1:]...)
	}
	return args
}

// deduplicateFlags drops every occurrence of a flag but the last. A flag
// followed by an argument that does not start with "-" takes it as its
// value. Everything after "--" is kept as is.
func deduplicateFlags(args []string) []string {
	type token struct {
		key   string
		parts []string
	}

	var (
		tokens []token
		tail   []string
	)
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			tail = args[i:]
			break
		}
		if i < 2 || !strings.HasPrefix(a, "-") || a == "-" {
			tokens = append(tokens, token{parts: []string{a}})
			continue
		}

		key, _, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		t := token{key: key, parts: []string{a}}
		if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			t.parts = append(t.parts, args[i+1])
			i++
		}
		tokens = append(tokens, t)
	}

	last := map[string]int{}
	for i, t := range tokens {
		if t.key != "" {
			last[t.key] = i
		}
	}

	out := make([]string, 0, len(args))
	for i, t := range tokens {
		if t.key != "" && last[t.key] != i {
			continue
		}
		out = append(out, t.parts...)
	}
	return append(out, tail...)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}
	if err := scan.PurgeCache(); err != nil {
		log.Debugf("cache purge err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)
	args = expandSets(args, configSet)
	args = deduplicateFlags(args)
	log.Debugf("args after processing: args=%v", args)

	return initAndRunApp(args)
}
