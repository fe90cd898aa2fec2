// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads profcache's optional YAML tool configuration and
// offers typed getters over dotted keys such as "dirs.user". The file is
// taken from PROFCACHE_CFG_FILE when set, otherwise from profcache.yaml in
// os.UserConfigDir:
//   - Linux: $XDG_CONFIG_HOME/profcache.yaml or $HOME/.config/profcache.yaml
//   - macOS: $HOME/Library/Application Support/profcache.yaml
//   - Windows: %AppData%/profcache.yaml
//
// A missing file is normal; every getter then falls back to its default.
package config
