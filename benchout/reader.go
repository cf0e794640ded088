// Copyright 2026 The timeit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchout

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

// A Reader reads benchmark result lines from a captured output
// stream.
//
// Lines that are not benchmark results are skipped; a line that
// begins with "Benchmark" but cannot be parsed is reported as a
// *SyntaxError through Measurement, which is non-fatal to the scan.
type Reader struct {
	s       *bufio.Scanner
	lineNum int
	err     error

	m    Measurement
	mErr error
}

var errNoScan = errors.New("benchout: Scan has not been called")

// NewReader returns a Reader scanning benchmark results from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		s:    bufio.NewScanner(r),
		mErr: errNoScan,
	}
}

// Scan advances to the next benchmark result line and reports whether
// one was found. The caller retrieves it with Measurement.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.lineNum++
		line := r.s.Text()
		if !strings.HasPrefix(line, "Benchmark") {
			continue
		}
		// Committed to a benchmark line; a malformed one is an
		// error, not chatter.
		r.mErr = r.parseLine(line[len("Benchmark"):])
		return true
	}
	r.err = r.s.Err()
	return false
}

// Measurement returns the last result read, or an error if the line
// was malformed. The returned Measurement is owned by the Reader and
// overwritten by the next Scan.
func (r *Reader) Measurement() (*Measurement, error) {
	if r.mErr != nil {
		return nil, r.mErr
	}
	return &r.m, nil
}

// Err returns the first I/O error encountered by the Reader.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) parseLine(line string) error {
	f := strings.Fields(line)
	if len(f) < 2 {
		return &SyntaxError{r.lineNum, "missing iteration count"}
	}
	r.m.Name = Name(f[0])
	iters, err := strconv.Atoi(f[1])
	if err != nil {
		return &SyntaxError{r.lineNum, "parsing iteration count: " + err.Error()}
	}
	r.m.Iters = iters

	f = f[2:]
	if len(f) == 0 {
		return &SyntaxError{r.lineNum, "missing measurements"}
	}
	r.m.Values = r.m.Values[:0]
	for len(f) > 0 {
		val, err := strconv.ParseFloat(f[0], 64)
		if err != nil {
			return &SyntaxError{r.lineNum, "parsing measurement: " + err.Error()}
		}
		if len(f) < 2 {
			return &SyntaxError{r.lineNum, "missing unit"}
		}
		unit := f[1]
		f = f[2:]

		tidied, factor := Tidy(unit)
		v := Value{Value: val, Unit: unit}
		if factor != 1 {
			v = Value{Value: val * factor, Unit: tidied, OrigValue: val, OrigUnit: unit}
		}
		r.m.Values = append(r.m.Values, v)
	}
	return nil
}

// ReadAll parses every benchmark result in r, in input order. It
// stops at the first malformed benchmark line or I/O error.
func ReadAll(rd io.Reader) ([]Measurement, error) {
	r := NewReader(rd)
	var out []Measurement
	for r.Scan() {
		m, err := r.Measurement()
		if err != nil {
			return nil, err
		}
		cp := *m
		cp.Values = append([]Value(nil), m.Values...)
		out = append(out, cp)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
