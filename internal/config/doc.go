// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for cliwire's user
// configuration. The configuration is a YAML document located either at
// $CLIWIRE_CFG_FILE or in the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/cliwire.yaml or $HOME/.config/cliwire.yaml
//   - Windows: %APPDATA%/cliwire.yaml
//
// Discovery defaults live under "discovery", the plugin root under
// "plugins.root" and viewset payloads under "viewsets.<name>".
package config
