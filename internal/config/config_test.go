// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
dirs:
  user: /home/u/.profcache
  system: /opt/profcache
cache:
  slots: 4
expand_env: false
ratio: 2.5
colors:
  title: "#ff8800"
dump:
  json: ["-o", "json"]
  one: "-o"
  bad: [1, 2]
`

// withConfig writes body to a temp config file, points PROFCACHE_CFG_FILE at
// it and resets the global Config around fn.
func withConfig(t *testing.T, body string, fn func(t *testing.T)) {
	t.Helper()

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv(EnvFile, path)

	Config = Type{}
	t.Cleanup(func() { Config = Type{} })
	fn(t)
}

func TestLoad(t *testing.T) {
	withConfig(t, sampleYAML, func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, os.Getenv(EnvFile), cfg.Source)

		dirs, ok := cfg.Data["dirs"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "/opt/profcache", dirs["system"])
		assert.Equal(t, cfg.Source, Path())
	})
}

func TestLoad_EmptyFile(t *testing.T) {
	withConfig(t, "", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.NotEmpty(t, cfg.Source)
		assert.Empty(t, cfg.Data)
	})
}

func TestLoad_Invalid(t *testing.T) {
	withConfig(t, "dirs: [unclosed", func(t *testing.T) {
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoad_ExplicitPath(t *testing.T) {
	t.Setenv(EnvFile, "/nonexistent/profcache.yaml")
	path := filepath.Join(t.TempDir(), "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("boot:\n  file: /x/boot.ini\n"), 0o600))
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	_, err := Load(path)
	require.NoError(t, err)

	got, err := GetString("boot.file")
	require.NoError(t, err)
	assert.Equal(t, "/x/boot.ini", got)
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv(EnvFile, "/nonexistent/path/profcache.yaml")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
	assert.Equal(t, "", Path())
}

func TestLoad_CfgFileIsDirectory(t *testing.T) {
	t.Setenv(EnvFile, t.TempDir())
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{name: "nested string", key: "dirs.user", want: "/home/u/.profcache"},
		{name: "missing with default", key: "dirs.other", defaultValue: []string{"d"}, want: "d"},
		{name: "missing without default", key: "dirs.other", wantErr: true},
		{name: "descends through scalar", key: "expand_env.x", wantErr: true},
		{name: "non-string value", key: "cache.slots", wantErr: true},
	}

	withConfig(t, sampleYAML, func(t *testing.T) {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := GetString(tt.key, tt.defaultValue...)
				if tt.wantErr {
					assert.Error(t, err)
					return
				}
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	})
}

func TestGetInt(t *testing.T) {
	withConfig(t, sampleYAML, func(t *testing.T) {
		got, err := GetInt("cache.slots")
		require.NoError(t, err)
		assert.Equal(t, 4, got)

		got, err = GetInt("ratio")
		require.NoError(t, err)
		assert.Equal(t, 2, got)

		got, err = GetInt("cache.missing", 10)
		require.NoError(t, err)
		assert.Equal(t, 10, got)

		_, err = GetInt("cache.missing")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = GetInt("dirs.user")
		assert.Error(t, err)
	})
}

func TestGetBool(t *testing.T) {
	withConfig(t, sampleYAML, func(t *testing.T) {
		got, err := GetBool("expand_env", true)
		require.NoError(t, err)
		assert.False(t, got)

		got, err = GetBool("missing", true)
		require.NoError(t, err)
		assert.True(t, got)

		_, err = GetBool("cache.slots")
		assert.Error(t, err)
	})
}

func TestGetStringSlice(t *testing.T) {
	withConfig(t, sampleYAML, func(t *testing.T) {
		got, err := GetStringSlice("dump.json")
		require.NoError(t, err)
		assert.Equal(t, []string{"-o", "json"}, got)

		got, err = GetStringSlice("dump.one")
		require.NoError(t, err)
		assert.Equal(t, []string{"-o"}, got)

		_, err = GetStringSlice("dump.bad")
		assert.Error(t, err)

		got, err = GetStringSlice("dump.none", []string{"x"})
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, got)
	})
}

func TestLazyLoad(t *testing.T) {
	withConfig(t, sampleYAML, func(t *testing.T) {
		assert.Empty(t, Config.Data)
		got, err := GetString("colors.title")
		require.NoError(t, err)
		assert.Equal(t, "#ff8800", got)
		assert.NotEmpty(t, Config.Source)
	})
}
