// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package harness invokes a command with positional values and reports the
// outcome as a Result.
//
// Values map onto the command's flags by position. A required flag without a
// value is rejected with ErrMissingPositional before anything runs. By
// default the command then runs in a child process: the current executable
// is started again with CLIWIRE_HARNESS=1 and the command path plus flags as
// arguments. The child must hand control to Serve early, typically from
// TestMain:
//
//	func TestMain(m *testing.M) {
//		harness.Serve(newRoot())
//		os.Exit(m.Run())
//	}
//
// Failures inside the child (an error, a panic or a non-zero exit) never
// surface as Go errors; they are reported in Result.
package harness
