// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package viewset builds command groups whose commands share one stateful
// instance.
//
// A viewset type embeds Base (or Abstract, which adds the echo, list and
// command_version built-ins) and registers its commands in Define:
//
//	type Inspector struct {
//		viewset.Abstract
//		Region string
//	}
//
//	func (i *Inspector) Define(b *viewset.Builder) {
//		i.Abstract.Define(b)
//		b.Command("region", &cli.Command{Usage: "Print the region"}, i.region)
//	}
//
//	func (i *Inspector) Convert() error { return i.ImportPayload() }
//
// Build applies options to the instance, keeps the registered commands whose
// method name contains an entry of the allow-list (Commands), hides those
// that also match HiddenCommands, and finally runs Convert so commands
// invoked later observe the imported state. Every Build produces a fresh
// group.
package viewset
