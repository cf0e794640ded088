// Copyright 2026 The timeit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snippet models one timeit invocation: the candidate
// expressions to compare, the shared setup code, and the selected
// measurement mode.
//
// A Model is immutable once validated. Candidate text is treated as an
// opaque byte sequence; it is never parsed or checked here. The Go
// toolchain is the sole validator of candidate code, so a broken
// expression surfaces only when the synthesized harness is compiled.
package snippet

import (
	"fmt"
	"sort"
)

// A Candidate is one expression under comparison. Its identity is its
// position in the original command-line argument list; Expr may be
// duplicated across candidates or contain characters that are unsafe
// in identifiers.
type Candidate struct {
	Index int
	Expr  string
}

// A Model is the validated input of one run.
type Model struct {
	// Candidates are the expressions to compare, in command-line
	// order. Never empty after Validate.
	Candidates []Candidate

	// Setup is optional code executed once per measured unit
	// before timing begins. Shared by all candidates.
	Setup string

	// Mode selects the measurement backend.
	Mode Mode

	// Imports are extra import specs for the generated source,
	// either a bare path ("math/rand") or an aliased spec
	// (`r "math/rand"`).
	Imports []string

	// Includes are file contents embedded verbatim into the
	// generated source, after the imports.
	Includes []string

	// Deps are extra module requirements ("path@version" or just
	// "path") for the generated project.
	Deps []string

	// Count is the number of samples the benchmarking engine
	// collects per candidate.
	Count int
}

// New builds a Model from the raw candidate expressions and validates
// it. The exprs are assigned indexes in order.
func New(exprs []string) (*Model, error) {
	m := &Model{Count: DefaultCount}
	for i, e := range exprs {
		m.Candidates = append(m.Candidates, Candidate{Index: i, Expr: e})
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// DefaultCount is the default number of samples requested from the
// benchmarking engine. Ten samples is the minimum benchstat-style
// statistics want for a stable median.
const DefaultCount = 10

// Validate checks the Model before any workspace is allocated or any
// child process is spawned. It returns a *ConfigError describing the
// first problem found.
func (m *Model) Validate() error {
	if len(m.Candidates) == 0 {
		return &ConfigError{Msg: "no expressions to measure"}
	}
	for i, c := range m.Candidates {
		if c.Index != i {
			return &ConfigError{Msg: fmt.Sprintf("candidate %q has index %d, want %d", c.Expr, c.Index, i)}
		}
	}
	if m.Mode.counter != "" {
		if _, ok := counters[m.Mode.counter]; !ok {
			return &ConfigError{Msg: fmt.Sprintf("unknown hardware counter %q", m.Mode.counter)}
		}
	}
	if m.Count <= 0 {
		return &ConfigError{Msg: fmt.Sprintf("sample count must be positive, got %d", m.Count)}
	}
	return nil
}

// A ConfigError reports invalid input detected before code generation.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

// A Mode selects the measurement backend for a run: wall-clock time,
// or one named hardware performance counter. The zero Mode is
// wall-clock time.
type Mode struct {
	counter string
}

// WallClock returns the wall-clock time measurement mode.
func WallClock() Mode {
	return Mode{}
}

// Counter returns the measurement mode for the named hardware
// counter. The name is validated; unknown names fail with a
// *ConfigError listing nothing — use CounterNames for the valid set.
func Counter(name string) (Mode, error) {
	if _, ok := counters[name]; !ok {
		return Mode{}, &ConfigError{Msg: fmt.Sprintf("unknown hardware counter %q", name)}
	}
	return Mode{counter: name}, nil
}

// IsCounter reports whether m measures a hardware counter rather than
// wall-clock time.
func (m Mode) IsCounter() bool {
	return m.counter != ""
}

// Counter returns the counter name, or "" for wall-clock time.
func (m Mode) Counter() string {
	return m.counter
}

// Unit returns the tidied measurement unit reported for this mode:
// "sec/op" for wall-clock time, "<counter>/op" otherwise.
func (m Mode) Unit() string {
	if m.counter == "" {
		return "sec/op"
	}
	return m.counter + "/op"
}

// Event returns the perf_event_open PERF_COUNT_HW_* constant name for
// a counter mode. It panics for the wall-clock mode.
func (m Mode) Event() string {
	ev, ok := counters[m.counter]
	if !ok {
		panic("snippet: Event on wall-clock mode")
	}
	return ev
}

func (m Mode) String() string {
	if m.counter == "" {
		return "wall-clock"
	}
	return m.counter
}

// counters maps user-facing counter names to the PERF_COUNT_HW_*
// constant emitted into the generated source.
var counters = map[string]string{
	"cycles":        "PERF_COUNT_HW_CPU_CYCLES",
	"instructions":  "PERF_COUNT_HW_INSTRUCTIONS",
	"branches":      "PERF_COUNT_HW_BRANCH_INSTRUCTIONS",
	"branch-misses": "PERF_COUNT_HW_BRANCH_MISSES",
	"cache-refs":    "PERF_COUNT_HW_CACHE_REFERENCES",
	"cache-misses":  "PERF_COUNT_HW_CACHE_MISSES",
	"bus-cycles":    "PERF_COUNT_HW_BUS_CYCLES",
	"ref-cycles":    "PERF_COUNT_HW_REF_CPU_CYCLES",
}

// CounterNames returns the valid hardware counter names in sorted
// order.
func CounterNames() []string {
	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
