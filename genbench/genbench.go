// Copyright 2026 The timeit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package genbench synthesizes a self-contained benchmark project
// from a snippet.Model.
//
// The synthesizer is pure: the same Model always produces the same
// files, byte for byte. Candidate and setup text are substituted into
// fixed templates as opaque byte sequences at well-defined insertion
// points; nothing is parsed or validated here. Each candidate becomes
// one Benchmark function whose name is derived from the candidate's
// index, never from its text, so duplicate or identifier-unsafe
// expressions are handled uniformly.
//
// The generated harness leans on the testing package as the
// benchmarking engine: b.Loop owns iteration counts and keeps the
// loop body's inputs and outputs alive, and the generated sink
// function forces evaluation of each expression's value. Setup text
// is placed before the loop, so it runs once per measured unit,
// outside the timed region.
package genbench

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/timeit-dev/timeit/snippet"
)

// xsysVersion pins golang.org/x/sys in generated projects that read
// hardware counters.
const xsysVersion = "v0.30.0"

// A File is one synthesized project file.
type File struct {
	Name string
	Data []byte
}

// Project synthesizes the benchmark project for m. The returned files
// are relative to the workspace root, in a fixed order: go.mod, the
// measurement support file, the benchmark source.
//
// bench_test.go is identical across measurement modes; switching
// modes changes only go.mod, counter.go, and the build/run
// invocation.
func Project(m *snippet.Model) ([]File, error) {
	files := make([]File, 0, 3)

	gomod, err := render(modTmpl, modData{
		NeedSys: m.Mode.IsCounter(),
		SysVer:  xsysVersion,
		Deps:    depRequires(m.Deps),
	})
	if err != nil {
		return nil, err
	}
	files = append(files, File{"go.mod", gomod})

	var counter []byte
	if m.Mode.IsCounter() {
		counter, err = render(counterOnTmpl, counterData{
			Event: m.Mode.Event(),
			Unit:  m.Mode.Unit(),
		})
	} else {
		counter, err = render(counterOffTmpl, nil)
	}
	if err != nil {
		return nil, err
	}
	files = append(files, File{"counter.go", counter})

	bench, err := render(benchTmpl, benchData{
		Imports:    importSpecs(m.Imports),
		Includes:   m.Includes,
		Setup:      m.Setup,
		Candidates: m.Candidates,
	})
	if err != nil {
		return nil, err
	}
	files = append(files, File{"bench_test.go", bench})

	return files, nil
}

// BenchName returns the synthesized benchmark identifier for a
// candidate index. The driver and presenter match engine output to
// candidates through this name.
func BenchName(index int) string {
	return fmt.Sprintf("Expr%d", index)
}

// importSpecs normalizes user import specs into import-block lines.
// A spec already containing a quote is taken verbatim, "alias path"
// becomes `alias "path"`, and a bare path is quoted.
func importSpecs(imports []string) []string {
	specs := make([]string, 0, len(imports))
	for _, imp := range imports {
		imp = strings.TrimSpace(imp)
		if imp == "" {
			continue
		}
		if strings.Contains(imp, `"`) {
			specs = append(specs, imp)
			continue
		}
		if f := strings.Fields(imp); len(f) == 2 {
			specs = append(specs, fmt.Sprintf("%s %q", f[0], f[1]))
			continue
		}
		specs = append(specs, fmt.Sprintf("%q", imp))
	}
	return specs
}

// depRequires converts "path@version" dependency specs to go.mod
// require lines. A spec without a version is omitted; go mod tidy
// resolves it from the import graph instead.
func depRequires(deps []string) []string {
	reqs := make([]string, 0, len(deps))
	for _, dep := range deps {
		path, version, ok := strings.Cut(dep, "@")
		if !ok || path == "" || version == "" {
			continue
		}
		reqs = append(reqs, path+" "+version)
	}
	return reqs
}

func render(t *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %v", t.Name(), err)
	}
	return buf.Bytes(), nil
}

type modData struct {
	NeedSys bool
	SysVer  string
	Deps    []string
}

var modTmpl = template.Must(template.New("go.mod").Parse(`module timeitbench

go 1.24
{{if .NeedSys}}
require golang.org/x/sys {{.SysVer}}
{{end}}{{range .Deps}}
require {{.}}
{{end}}`))

type benchData struct {
	Imports    []string
	Includes   []string
	Setup      string
	Candidates []snippet.Candidate
}

var benchTmpl = template.Must(template.New("bench_test.go").Parse(`// Code generated by timeit. DO NOT EDIT.

package timeitbench

import (
	"testing"
{{range .Imports}}	{{.}}
{{end}})
{{range .Includes}}
{{.}}
{{end}}
//go:noinline
func sink[T any](v T) T { return v }

{{range .Candidates}}func BenchmarkExpr{{.Index}}(b *testing.B) {
{{with $.Setup}}	{{.}}
{{end}}	counterStart(b)
	for b.Loop() {
		sink({{.Expr}})
	}
	counterStop(b)
}

{{end}}`))

var counterOffTmpl = template.Must(template.New("counter.go").Parse(`// Code generated by timeit. DO NOT EDIT.

package timeitbench

import "testing"

// Wall-clock runs use the testing package's own timer; the counter
// hooks are no-ops.
func counterStart(b *testing.B) {}

func counterStop(b *testing.B) {}
`))

type counterData struct {
	Event string
	Unit  string
}

var counterOnTmpl = template.Must(template.New("counter.go").Parse(`// Code generated by timeit. DO NOT EDIT.

package timeitbench

import (
	"encoding/binary"
	"runtime"
	"testing"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	counterEvent = unix.{{.Event}}
	counterUnit  = "{{.Unit}}"
)

var counterFD = -1

func counterStart(b *testing.B) {
	runtime.LockOSThread()
	attr := unix.PerfEventAttr{
		Type:   unix.PERF_TYPE_HARDWARE,
		Config: counterEvent,
		Size:   uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
		Bits:   unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
	}
	fd, err := unix.PerfEventOpen(&attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		b.Fatalf("perf_event_open: %v (check kernel.perf_event_paranoid)", err)
	}
	counterFD = fd
	unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_RESET, 0)
	unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_ENABLE, 0)
}

func counterStop(b *testing.B) {
	fd := counterFD
	counterFD = -1
	unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_DISABLE, 0)
	var raw [8]byte
	if _, err := unix.Read(fd, raw[:]); err != nil {
		b.Fatalf("reading counter: %v", err)
	}
	unix.Close(fd)
	runtime.UnlockOSThread()
	total := binary.LittleEndian.Uint64(raw[:])
	b.ReportMetric(float64(total)/float64(b.N), counterUnit)
}
`))
