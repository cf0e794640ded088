// Copyright 2026 The timeit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchout parses the Go benchmark format emitted by a
// compiled benchmark binary.
//
// This implements the subset of the format documented at
// https://golang.org/design/14313-benchmark-format that the testing
// package produces: benchmark result lines and measurement
// value/unit pairs. File configuration lines and run chatter (PASS,
// ok, goos: ...) are skipped. The Reader API is modeled on
// bufio.Scanner.
package benchout

import (
	"fmt"
	"strings"
)

// A Measurement is a single benchmark result line: one measured unit
// and all of its value/unit pairs.
type Measurement struct {
	// Name is the full benchmark name, including any GOMAXPROCS
	// suffix.
	Name Name

	// Iters is the number of iterations the values were averaged
	// over.
	Iters int

	// Values are the measurements, tidied to base units.
	Values []Value
}

// Value returns the measurement for the given tidied unit.
func (m *Measurement) Value(unit string) (float64, bool) {
	for _, v := range m.Values {
		if v.Unit == unit {
			return v.Value, true
		}
	}
	return 0, false
}

// A Value is a single value/unit pair from a benchmark line.
//
// Values are tidied to base units when read. OrigValue and OrigUnit,
// if non-zero, preserve the input as written.
type Value struct {
	Value float64
	Unit  string

	OrigValue float64
	OrigUnit  string
}

// A Name is a full benchmark name as printed by the testing package,
// without the "Benchmark" prefix.
type Name string

// Base returns the benchmark name without the trailing "-N"
// GOMAXPROCS suffix, if any.
func (n Name) Base() string {
	s := string(n)
	if slash := strings.IndexByte(s, '/'); slash >= 0 {
		return s[:slash]
	}
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if c == '-' && i < len(s)-1 {
			return s[:i]
		}
		if c < '0' || c > '9' {
			break
		}
	}
	return s
}

// A SyntaxError reports a malformed benchmark line in captured engine
// output.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Tidy normalizes common pre-scaled units to base units. It returns
// the tidied unit and the factor converting a value in unit to a
// value in the tidied unit.
func Tidy(unit string) (tidied string, factor float64) {
	switch unit {
	case "ns/op":
		return "sec/op", 1e-9
	case "MB/s":
		return "B/s", 1e6
	}
	return unit, 1
}
