// Copyright 2026 The timeit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Timeit measures and compares the execution time of small Go
// expressions.
//
// Usage:
//
//	timeit [flags] expr...
//
// Each expression becomes one benchmark in a synthesized project that
// is compiled with the Go toolchain and executed by the testing
// package's benchmarking engine. The ranked comparison is printed to
// stdout:
//
//	$ timeit -s 'xs := make([]int, 1024)' 'len(xs)' 'cap(xs)' 'xs[0]'
//	           sec/op  vs fastest
//	len(xs)   0.31n ± 2%       1.00x
//	cap(xs)   0.31n ± 1%       1.00x
//	xs[0]     0.62n ± 3%       2.00x
//
// With --counter, a Linux hardware performance counter is measured
// instead of wall-clock time; see --counter help for the valid names.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/timeit-dev/timeit/snippet"
)

func main() {
	// The workspace must be removed on interrupt too: cancelling
	// the context kills the child process, the driver unwinds, and
	// its deferred cleanup runs before we exit.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "timeit: %s\n", err)
		var cfgErr *snippet.ConfigError
		if errors.As(err, &cfgErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
