// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other cliwire packages to avoid import cycles.

package version

import "runtime/debug"

// Version is the module version recorded in the build, or "dev" for local
// builds and tests.
var Version = fromBuildInfo(debug.ReadBuildInfo())

func fromBuildInfo(info *debug.BuildInfo, ok bool) string {
	if !ok || info == nil {
		return "dev"
	}
	switch v := info.Main.Version; v {
	case "", "(devel)":
		return "dev"
	default:
		return v
	}
}
