// Copyright 2026 The timeit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeit-dev/timeit/genbench"
)

func TestWorkspaceLifecycle(t *testing.T) {
	ws, err := NewWorkspace(quietLogger())
	require.NoError(t, err)

	info, err := os.Stat(ws.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	err = ws.WriteFiles([]genbench.File{
		{Name: "go.mod", Data: []byte("module timeitbench\n")},
		{Name: "bench_test.go", Data: []byte("package timeitbench\n")},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(ws.Dir, "go.mod"))
	require.NoError(t, err)
	assert.Equal(t, "module timeitbench\n", string(data))

	dir := ws.Dir
	ws.Remove()
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	// Remove is idempotent, including on a nil workspace.
	ws.Remove()
	(*Workspace)(nil).Remove()
}
