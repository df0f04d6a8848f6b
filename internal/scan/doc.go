// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package scan locates command and group declarations in plugin source files
// without executing them. Each Go file directly inside a candidate directory
// is parsed and inspected for marker directives:
//
//	//cli:group               the following declaration is a group
//	//cli:command             the following declaration is a command
//	//cli:viewset Inspector   the following declaration is exposed by the
//	                          viewset type Inspector
//
// Calls such as parent.Attach(name) or append(parent.Commands, name) mark a
// name as wired by hand; such names are reported as exclusions so the
// registrar never binds them a second time.
package scan
