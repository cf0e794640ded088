// Copyright 2026 The timeit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import "strings"

// A BuildError reports that the toolchain failed to build the
// synthesized harness. Output carries the toolchain's diagnostics
// verbatim. Because all candidates share one harness, a syntax or
// type error in any single candidate fails the whole run with zero
// results.
type BuildError struct {
	Output string
}

func (e *BuildError) Error() string {
	out := strings.TrimRight(e.Output, "\n")
	if out == "" {
		return "benchmark harness failed to build"
	}
	return "benchmark harness failed to build:\n" + out
}

// A RunError reports that the compiled benchmark binary failed or
// produced output the parser could not account for. Output carries
// the captured engine output.
type RunError struct {
	Msg    string
	Output string
}

func (e *RunError) Error() string {
	out := strings.TrimRight(e.Output, "\n")
	if out == "" {
		return e.Msg
	}
	return e.Msg + ":\n" + out
}
