// Copyright 2026 The timeit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/timeit-dev/timeit/genbench"
)

// A Workspace is the ephemeral directory holding one run's
// synthesized project. It is exclusively owned by the driver for the
// run's duration and removed on every exit path.
type Workspace struct {
	Dir string

	log *slog.Logger
}

// NewWorkspace allocates a fresh scoped directory.
func NewWorkspace(log *slog.Logger) (*Workspace, error) {
	dir, err := os.MkdirTemp("", "timeit-*")
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	log.Debug("created workspace", "dir", dir)
	return &Workspace{Dir: dir, log: log}, nil
}

// WriteFiles materializes the synthesized project files into the
// workspace. File names must be relative to the workspace root.
func (w *Workspace) WriteFiles(files []genbench.File) error {
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(w.Dir, f.Name), f.Data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", f.Name, err)
		}
	}
	return nil
}

// Remove deletes the workspace. A removal failure is logged but does
// not change the run's outcome. Remove is idempotent.
func (w *Workspace) Remove() {
	if w == nil || w.Dir == "" {
		return
	}
	if err := os.RemoveAll(w.Dir); err != nil {
		w.log.Warn("failed to remove workspace", "dir", w.Dir, "err", err)
	} else {
		w.log.Debug("removed workspace", "dir", w.Dir)
	}
	w.Dir = ""
}
