// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/tfctl/profcache/internal/log"
)

// ErrInvalidName is returned for names that cannot be normalized into a file
// path.
var ErrInvalidName = errors.New("invalid profile name")

// Location is the outcome of resolving one requested name.
type Location struct {
	// Name is the name as requested.
	Name string
	// Identity is the case-folded canonical path used as the cache key.
	Identity string
	// Path is the fully resolved path.
	Path string
	// Candidates lists backing files in read priority order.
	Candidates []string
}

// WritePath returns the file a modified profile is written to.
func (l Location) WritePath() string {
	if len(l.Candidates) == 0 {
		return l.Path
	}
	return l.Candidates[0]
}

// Resolver resolves profile names against a system directory and an optional
// per-user override directory.
type Resolver struct {
	fs        afero.Fs
	systemDir string
	userDir   string
	workDir   string
}

// New returns a Resolver. An empty userDir disables per-user overrides, in
// which case profiles are read from and written to their resolved path.
func New(fs afero.Fs, systemDir, userDir string) *Resolver {
	wd, err := os.Getwd()
	if err != nil {
		wd = string(filepath.Separator)
	}
	return &Resolver{
		fs:        fs,
		systemDir: cleanDir(systemDir),
		userDir:   cleanDir(userDir),
		workDir:   wd,
	}
}

// FS returns the file system the resolver reads from.
func (r *Resolver) FS() afero.Fs {
	return r.fs
}

// SystemDir returns the directory bare names resolve against.
func (r *Resolver) SystemDir() string {
	return r.systemDir
}

// UserDir returns the per-user override directory, or "" if disabled.
func (r *Resolver) UserDir() string {
	return r.userDir
}

// Resolve computes the identity and candidates for name.
func (r *Resolver) Resolve(name string) (Location, error) {
	p, err := r.fullPath(name)
	if err != nil {
		return Location{}, err
	}

	loc := Location{
		Name:     name,
		Identity: strings.ToLower(p),
		Path:     p,
	}
	if r.userDir != "" {
		user := filepath.Join(r.userDir, strings.ToLower(filepath.Base(p)))
		if !strings.EqualFold(user, p) {
			loc.Candidates = append(loc.Candidates, user)
		}
	}
	loc.Candidates = append(loc.Candidates, p)

	log.Tracef("resolved %q: identity=%s candidates=%v", name, loc.Identity, loc.Candidates)
	return loc, nil
}

// Open opens the first candidate of loc that exists as a regular file and
// returns it with its path. It returns an error wrapping os.ErrNotExist when
// no candidate can be opened.
func (r *Resolver) Open(loc Location) (afero.File, string, error) {
	for _, c := range loc.Candidates {
		f, err := r.fs.Open(c)
		if err != nil {
			log.Tracef("candidate %s: %v", c, err)
			continue
		}
		if st, err := f.Stat(); err != nil || st.IsDir() {
			_ = f.Close()
			continue
		}
		return f, c, nil
	}
	return nil, "", fmt.Errorf("no backing file for %s: %w", loc.Name, os.ErrNotExist)
}

// fullPath normalizes name. Backslashes count as separators and a leading
// drive letter is dropped, leaving the remainder rooted at "/".
func (r *Resolver) fullPath(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidName)
	}

	p := strings.ReplaceAll(name, `\`, "/")
	isPath := strings.Contains(p, "/")
	if hasDrive(p) {
		isPath = true
		p = p[2:]
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
	}
	if strings.HasSuffix(p, "/") {
		return "", fmt.Errorf("%q names a directory: %w", name, ErrInvalidName)
	}

	switch {
	case !isPath:
		p = filepath.Join(r.systemDir, p)
	case !filepath.IsAbs(p):
		p = filepath.Join(r.workDir, p)
	}
	p = filepath.Clean(p)

	switch filepath.Base(p) {
	case "/", ".", "..":
		return "", fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return p, nil
}

func hasDrive(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0] | 0x20
	return c >= 'a' && c <= 'z'
}

func cleanDir(dir string) string {
	if dir == "" {
		return ""
	}
	return filepath.Clean(dir)
}
