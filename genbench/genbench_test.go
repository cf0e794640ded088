// Copyright 2026 The timeit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package genbench

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeit-dev/timeit/snippet"
)

func model(t *testing.T, exprs ...string) *snippet.Model {
	t.Helper()
	m, err := snippet.New(exprs)
	require.NoError(t, err)
	return m
}

func file(t *testing.T, files []File, name string) string {
	t.Helper()
	for _, f := range files {
		if f.Name == name {
			return string(f.Data)
		}
	}
	t.Fatalf("no file %q in synthesized project", name)
	return ""
}

func TestProjectFiles(t *testing.T) {
	files, err := Project(model(t, "x + 1"))
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"go.mod", "counter.go", "bench_test.go"}, names)
}

func TestProjectIsPure(t *testing.T) {
	m := model(t, "a()", "b()")
	m.Setup = "x := 1"

	first, err := Project(m)
	require.NoError(t, err)
	second, err := Project(m)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same model must emit identical bytes")
}

func TestCandidateIdentifiers(t *testing.T) {
	// Duplicate and identifier-unsafe expressions still get
	// distinct, index-derived benchmark names.
	files, err := Project(model(t, `strings.Repeat("x", 10)`, `strings.Repeat("x", 10)`, "a + b*c"))
	require.NoError(t, err)

	src := file(t, files, "bench_test.go")
	assert.Contains(t, src, "func BenchmarkExpr0(b *testing.B)")
	assert.Contains(t, src, "func BenchmarkExpr1(b *testing.B)")
	assert.Contains(t, src, "func BenchmarkExpr2(b *testing.B)")
	assert.Contains(t, src, `sink(strings.Repeat("x", 10))`)
	assert.Contains(t, src, "sink(a + b*c)")
}

func TestSetupSharedByAllCandidates(t *testing.T) {
	m := model(t, "f()", "g()")
	m.Setup = "xs := make([]int, 1024)"

	files, err := Project(m)
	require.NoError(t, err)
	src := file(t, files, "bench_test.go")

	// Once per measured unit, before the loop.
	assert.Equal(t, 2, strings.Count(src, m.Setup))
}

func TestBenchSourceIdenticalAcrossModes(t *testing.T) {
	wall := model(t, "x * 2", "x << 1")
	counter := model(t, "x * 2", "x << 1")
	mode, err := snippet.Counter("instructions")
	require.NoError(t, err)
	counter.Mode = mode

	wallFiles, err := Project(wall)
	require.NoError(t, err)
	counterFiles, err := Project(counter)
	require.NoError(t, err)

	// Switching measurement modes must not touch the candidate
	// bodies, only the support file and the project metadata.
	assert.Equal(t,
		file(t, wallFiles, "bench_test.go"),
		file(t, counterFiles, "bench_test.go"))
	assert.NotEqual(t,
		file(t, wallFiles, "counter.go"),
		file(t, counterFiles, "counter.go"))
	assert.NotEqual(t,
		file(t, wallFiles, "go.mod"),
		file(t, counterFiles, "go.mod"))
}

func TestCounterSupportFile(t *testing.T) {
	m := model(t, "x")
	mode, err := snippet.Counter("cache-misses")
	require.NoError(t, err)
	m.Mode = mode

	files, err := Project(m)
	require.NoError(t, err)

	counter := file(t, files, "counter.go")
	assert.Contains(t, counter, "unix.PERF_COUNT_HW_CACHE_MISSES")
	assert.Contains(t, counter, `counterUnit  = "cache-misses/op"`)
	assert.Contains(t, file(t, files, "go.mod"), "require golang.org/x/sys")
}

func TestWallClockSupportFile(t *testing.T) {
	files, err := Project(model(t, "x"))
	require.NoError(t, err)

	counter := file(t, files, "counter.go")
	assert.NotContains(t, counter, "unix.")
	assert.NotContains(t, file(t, files, "go.mod"), "golang.org/x/sys")
}

func TestImportsAndIncludes(t *testing.T) {
	m := model(t, "r.Int()")
	m.Imports = []string{"math/rand", `r "math/rand"`, `alias "fmt"`}
	m.Includes = []string{"func helper() int { return 42 }"}

	files, err := Project(m)
	require.NoError(t, err)
	src := file(t, files, "bench_test.go")

	assert.Contains(t, src, "\t\"math/rand\"\n")
	assert.Contains(t, src, "\tr \"math/rand\"\n")
	assert.Contains(t, src, "\talias \"fmt\"\n")
	assert.Contains(t, src, "func helper() int { return 42 }")
}

func TestDepRequires(t *testing.T) {
	m := model(t, "x")
	m.Deps = []string{
		"github.com/google/uuid@v1.6.0",
		"github.com/no/version", // resolved by go mod tidy instead
	}

	files, err := Project(m)
	require.NoError(t, err)
	gomod := file(t, files, "go.mod")

	assert.Contains(t, gomod, "require github.com/google/uuid v1.6.0")
	assert.NotContains(t, gomod, "github.com/no/version")
}

func TestBenchName(t *testing.T) {
	assert.Equal(t, "Expr0", BenchName(0))
	assert.Equal(t, "Expr17", BenchName(17))
}
