// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/tfctl/profcache/internal/log"
)

// DefaultSystemDir is where bare profile names resolve when nothing else is
// configured.
const DefaultSystemDir = "/etc/profcache"

// DefaultUserDir resolves the per-user override directory from
// os.UserConfigDir()/profcache. Returns ("", false) if it cannot be resolved
// (treat as disabled).
func DefaultUserDir() (string, bool) {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "profcache"), true
	}
	return "", false
}

// EnsureUserDir creates the resolver's user directory if one is configured.
// Returns the path, whether it is usable, and an error if creation failed.
func (r *Resolver) EnsureUserDir() (string, bool, error) {
	if r.userDir == "" {
		return "", false, nil
	}
	if err := r.fs.MkdirAll(r.userDir, 0o755); err != nil { //nolint:mnd
		return r.userDir, false, fmt.Errorf("failed to create user directory: %w", err)
	}
	log.Debugf("ensured user dir: path=%s", r.userDir)
	return r.userDir, true, nil
}

// Exists reports whether path exists on fs as a regular file.
func Exists(fs afero.Fs, path string) bool {
	st, err := fs.Stat(path)
	return err == nil && !st.IsDir()
}
