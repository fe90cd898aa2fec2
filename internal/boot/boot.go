// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package boot

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"

	"github.com/tfctl/profcache/internal/hive"
	"github.com/tfctl/profcache/internal/log"
	"github.com/tfctl/profcache/internal/resolver"
)

const (
	// FileName is the base name of the boot file in the system directory.
	FileName = "boot.ini"

	// Root is the hive node the boot file is loaded under.
	Root = "Boot"

	pathsSection = "Paths"
)

// DefaultFile is the boot file used when none is configured.
var DefaultFile = filepath.Join(resolver.DefaultSystemDir, FileName)

// Load parses the boot file at path into store under root and returns the
// number of values written. A missing file yields an error wrapping
// os.ErrNotExist.
func Load(fs afero.Fs, path string, store hive.Store, root string) (int, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return 0, fmt.Errorf("failed to read boot file: %w", err)
	}

	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return 0, fmt.Errorf("failed to parse boot file %s: %w", path, err)
	}

	count := 0
	for _, sec := range f.Sections() {
		node := hive.Join(root, sec.Name())
		if sec.Name() == ini.DefaultSection {
			node = root
		}
		for _, k := range sec.Keys() {
			if err := store.SetValue(node, k.Name(), k.Value()); err != nil {
				return count, fmt.Errorf("failed to store %s/%s: %w", node, k.Name(), err)
			}
			count++
		}
	}

	log.Debugf("boot file loaded: path=%s values=%d", path, count)
	return count, nil
}

// Paths returns the UserDir and SystemDir values of the [Paths] section
// loaded under root. Missing values are returned as "".
func Paths(store hive.Store, root string) (userDir, systemDir string) {
	node := hive.Join(root, pathsSection)
	return lookup(store, node, "UserDir"), lookup(store, node, "SystemDir")
}

// LoadDefaults loads the boot file at path into a fresh hive and returns it
// with the [Paths] values. A missing boot file is not an error.
func LoadDefaults(fs afero.Fs, path string) (*hive.Memory, string, string, error) {
	store := hive.NewMemory()
	if path == "" {
		path = DefaultFile
	}
	if !resolver.Exists(fs, path) {
		log.Debugf("no boot file: path=%s", path)
		return store, "", "", nil
	}
	if _, err := Load(fs, path, store, Root); err != nil {
		return store, "", "", err
	}
	userDir, systemDir := Paths(store, Root)
	return store, userDir, systemDir, nil
}

func lookup(store hive.Store, node, name string) string {
	v, err := store.Value(node, name)
	if err != nil {
		if !errors.Is(err, hive.ErrNotFound) {
			log.WithError(err).Warnf("boot value %s/%s", node, name)
		}
		return ""
	}
	return v
}
