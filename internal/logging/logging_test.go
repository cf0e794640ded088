// Copyright 2026 The timeit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Verbose: true, Output: &buf})
	log.Debug("running toolchain", "tool", "go")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "running toolchain")
	assert.Contains(t, out, "tool=go")
}

func TestQuietSuppressesDebugAndInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf})
	log.Debug("hidden")
	log.Info("hidden too")
	assert.Empty(t, buf.String())

	log.Warn("failed to remove workspace")
	assert.Contains(t, buf.String(), "failed to remove workspace")
}
