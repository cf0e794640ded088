// Copyright 2026 The timeit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging provides structured logging for timeit.
//
// Diagnostics go to stderr so they never mix with the comparison
// table on stdout. The logger is a plain log/slog logger; verbose
// mode lowers the level to Debug, which makes the driver print every
// toolchain invocation.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Config controls logger construction.
type Config struct {
	// Verbose enables Debug-level output.
	Verbose bool

	// Output is the destination, stderr if nil.
	Output io.Writer
}

// New returns a logger per cfg.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

// Default returns a quiet stderr logger.
func Default() *slog.Logger {
	return New(Config{})
}
