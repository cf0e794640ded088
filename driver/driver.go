// Copyright 2026 The timeit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver materializes a synthesized benchmark project into a
// scoped workspace, builds it with the Go toolchain, runs the
// compiled benchmark binary, and collects one measurement series per
// candidate.
//
// A run moves through fixed states: the workspace is created and the
// source written, the toolchain compiles the harness, the compiled
// binary executes the engine's sampling loop, and the captured output
// is parsed and checked for completeness. The workspace is removed on
// every exit path. Both the build and the run block synchronously on
// one child process each; the driver imposes no timeout and controls
// neither sample iteration strategy nor warm-up, which belong to the
// engine.
package driver

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/timeit-dev/timeit/benchout"
	"github.com/timeit-dev/timeit/genbench"
	"github.com/timeit-dev/timeit/internal/logging"
	"github.com/timeit-dev/timeit/snippet"
)

// binName is the compiled harness binary inside the workspace.
const binName = "timeit.test"

// A Runner drives one build-and-measure cycle. The zero value is
// ready to use.
type Runner struct {
	// Tool is the Go toolchain command, "go" if empty. Tests
	// substitute a stub.
	Tool string

	// Log receives driver diagnostics; a quiet stderr logger if
	// nil.
	Log *slog.Logger
}

// A Result is the measurement series for one candidate: the engine's
// per-sample point estimates in the mode's base unit. result[i] of a
// successful run corresponds to candidate[i], matched by synthesized
// identifier, never by expression text.
type Result struct {
	Candidate snippet.Candidate
	Samples   []float64
	Unit      string
}

// Run executes the full pipeline for m. On success it returns exactly
// one Result per candidate, in candidate order. On failure it returns
// a *snippet.ConfigError, *BuildError, or *RunError; no partial
// results are ever returned.
func (r *Runner) Run(ctx context.Context, m *snippet.Model) ([]Result, error) {
	// Fail fast on config errors: no workspace, no child process.
	if err := m.Validate(); err != nil {
		return nil, err
	}
	files, err := genbench.Project(m)
	if err != nil {
		return nil, err
	}

	ws, err := NewWorkspace(r.logger())
	if err != nil {
		return nil, err
	}
	defer ws.Remove()

	if err := ws.WriteFiles(files); err != nil {
		return nil, err
	}

	// Resolve the generated project's requirements, then compile.
	// Both are build-stage failures carrying the toolchain's
	// diagnostics verbatim.
	if out, err := r.tool(ctx, ws.Dir, "mod", "tidy"); err != nil {
		return nil, &BuildError{Output: out}
	}
	if out, err := r.tool(ctx, ws.Dir, "test", "-c", "-o", binName, "."); err != nil {
		return nil, &BuildError{Output: out}
	}

	out, err := r.execute(ctx, ws.Dir, m.Count)
	if err != nil {
		return nil, &RunError{Msg: "benchmark run failed", Output: out}
	}

	ms, err := benchout.ReadAll(bytes.NewReader([]byte(out)))
	if err != nil {
		return nil, &RunError{Msg: "unparseable engine output (" + err.Error() + ")", Output: out}
	}
	results, missing := collect(m, ms)
	if missing != "" {
		return nil, &RunError{Msg: "no measurements for " + missing, Output: out}
	}
	return results, nil
}

// execute runs the compiled benchmark binary, letting the embedded
// engine own its sampling loop, and captures its output stream.
func (r *Runner) execute(ctx context.Context, dir string, count int) (string, error) {
	bin := filepath.Join(dir, binName)
	args := []string{"-test.bench=.", "-test.count=" + strconv.Itoa(count)}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	r.logger().Debug("running benchmark binary", "bin", bin, "args", args)
	err := cmd.Run()
	return buf.String(), err
}

// tool invokes the Go toolchain in dir with combined output captured.
func (r *Runner) tool(ctx context.Context, dir string, args ...string) (string, error) {
	name := r.Tool
	if name == "" {
		name = "go"
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GOWORK=off")
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	r.logger().Debug("running toolchain", "tool", name, "args", args, "dir", dir)
	err := cmd.Run()
	return buf.String(), err
}

// collect groups measurements by synthesized identifier and checks
// that every candidate has at least one sample of the mode's unit.
// missing names the first unmatched identifier, or "".
func collect(m *snippet.Model, ms []benchout.Measurement) (results []Result, missing string) {
	unit := m.Mode.Unit()
	byName := make(map[string][]float64)
	for i := range ms {
		v, ok := ms[i].Value(unit)
		if !ok {
			continue
		}
		base := ms[i].Name.Base()
		byName[base] = append(byName[base], v)
	}
	results = make([]Result, len(m.Candidates))
	for i, c := range m.Candidates {
		name := genbench.BenchName(c.Index)
		samples := byName[name]
		if len(samples) == 0 {
			return nil, "Benchmark" + name
		}
		results[i] = Result{Candidate: c, Samples: samples, Unit: unit}
	}
	return results, ""
}

func (r *Runner) logger() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return logging.Default()
}
