// Copyright 2026 The timeit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/timeit-dev/timeit/driver"
	"github.com/timeit-dev/timeit/internal/logging"
	"github.com/timeit-dev/timeit/report"
	"github.com/timeit-dev/timeit/snippet"
)

var (
	flagSetup    string
	flagUses     []string
	flagIncludes []string
	flagDeps     []string
	flagCounter  string
	flagCount    int
	flagVerbose  bool

	rootCmd = &cobra.Command{
		Use:   "timeit [flags] expr...",
		Short: "Measure and compare the execution time of small Go expressions",
		Long: `Timeit compiles the given expressions into one benchmark program,
runs it with the Go testing engine, and prints a ranked comparison.
Expressions are passed to the compiler verbatim; a compile error in
any expression fails the whole run.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
)

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagSetup, "setup", "s", "", "code executed once per benchmark before timing begins")
	f.StringArrayVarP(&flagUses, "use", "u", nil, "extra import for the generated source (repeatable)")
	f.StringArrayVarP(&flagIncludes, "include", "i", nil, "file whose contents are embedded in the generated source (repeatable)")
	f.StringArrayVarP(&flagDeps, "dep", "d", nil, "extra module requirement, as path@version (repeatable)")
	f.StringVarP(&flagCounter, "counter", "p", "", "measure the named hardware counter instead of wall time (\"help\" lists names)")
	f.IntVarP(&flagCount, "count", "n", snippet.DefaultCount, "number of samples per expression")
	f.BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
}

func run(cmd *cobra.Command, args []string) error {
	if flagCounter == "help" {
		fmt.Fprintln(os.Stderr, "Valid values for --counter")
		for _, name := range snippet.CounterNames() {
			fmt.Fprintf(os.Stderr, "  %s\n", name)
		}
		os.Exit(1)
	}

	m, err := buildModel(args)
	if err != nil {
		return err
	}

	r := &driver.Runner{Log: logging.New(logging.Config{Verbose: flagVerbose})}
	results, err := r.Run(cmd.Context(), m)
	if err != nil {
		return err
	}

	t := report.Build(results)
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return t.ToText(os.Stdout, color)
}

// buildModel assembles and validates the snippet model. Include files
// are read here, before any workspace exists.
func buildModel(exprs []string) (*snippet.Model, error) {
	mode := snippet.WallClock()
	if flagCounter != "" {
		var err error
		mode, err = snippet.Counter(flagCounter)
		if err != nil {
			return nil, err
		}
	}

	var includes []string
	for _, name := range flagIncludes {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading include: %w", err)
		}
		includes = append(includes, string(data))
	}

	m := &snippet.Model{
		Setup:    flagSetup,
		Mode:     mode,
		Imports:  flagUses,
		Includes: includes,
		Deps:     flagDeps,
		Count:    flagCount,
	}
	for i, e := range exprs {
		m.Candidates = append(m.Candidates, snippet.Candidate{Index: i, Expr: e})
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
