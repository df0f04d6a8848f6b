// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package registrar

import (
	"github.com/tfctl/cliwire/internal/cacheutil"
	"github.com/tfctl/cliwire/internal/config"
)

// OptionsFromConfig reads the discovery section of the configuration file.
// Missing keys keep their defaults.
func OptionsFromConfig() Options {
	var opts Options
	opts.Patterns, _ = config.GetStringSlice("discovery.patterns", nil)
	opts.Ignores, _ = config.GetStringSlice("discovery.ignores", nil)
	opts.Scan.IndexFile, _ = config.GetString("discovery.index", "")
	opts.Scan.AttachMethods, _ = config.GetStringSlice("discovery.attach", nil)
	opts.Scan.ViewsetBases, _ = config.GetStringSlice("discovery.viewsets", nil)
	opts.Scan.Cache = cacheutil.Enabled()
	opts.Verbose, _ = config.GetBool("discovery.verbose", false)
	opts.Workers, _ = config.GetInt("discovery.workers", 0)
	return opts
}
