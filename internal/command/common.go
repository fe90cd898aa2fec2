// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/profcache/internal/boot"
	"github.com/tfctl/profcache/internal/config"
	"github.com/tfctl/profcache/internal/log"
	"github.com/tfctl/profcache/internal/meta"
	"github.com/tfctl/profcache/internal/profile"
	"github.com/tfctl/profcache/internal/resolver"
)

// CacheAction is the action signature of commands that work on profiles.
type CacheAction func(ctx context.Context, cmd *cli.Command, c *profile.Cache) error

// fs is the file system commands operate on.
var fs = afero.NewOsFs()

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// Stdout returns the writer command output goes to.
func Stdout(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// RequireArgs checks the positional argument count against [min, max]. A max
// below zero means unbounded.
func RequireArgs(cmd *cli.Command, min, max int) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) < min || (max >= 0 && len(args) > max) {
		return nil, fmt.Errorf("wrong number of arguments\nusage: %s", cmd.UsageText)
	}
	return args, nil
}

// ResolveDirs picks the system and user directories: flag, environment or
// config value first, then the boot file's [Paths], then platform defaults.
func ResolveDirs(cmd *cli.Command) (systemDir, userDir string) {
	_, bootUser, bootSystem, err := boot.LoadDefaults(fs, cmd.String("boot"))
	if err != nil {
		log.WithError(err).Warnf("ignoring boot file")
	}

	systemDir = first(cmd.String("system-dir"), bootSystem, resolver.DefaultSystemDir)

	userDir = first(cmd.String("user-dir"), bootUser)
	if userDir == "" {
		userDir, _ = resolver.DefaultUserDir()
	}

	log.Debugf("dirs resolved: system=%s user=%s", systemDir, userDir)
	return systemDir, userDir
}

// OpenCache builds a profile.Cache from the command's flags and config.
func OpenCache(cmd *cli.Command) *profile.Cache {
	systemDir, userDir := ResolveDirs(cmd)

	expand, err := config.GetBool("expand_env", true)
	if err != nil {
		log.WithError(err).Warnf("ignoring expand_env")
		expand = true
	}

	r := resolver.New(fs, systemDir, userDir)
	return profile.New(r,
		profile.WithCapacity(cmd.Int("slots")),
		profile.WithEnvExpansion(expand),
	)
}

// WithCache wraps a CacheAction so it runs against a freshly opened cache
// that is closed, flushing every dirty profile, when the action returns.
func WithCache(fn CacheAction, writes bool) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		log.Debugf("executing action for %v", GetMeta(cmd).Args)

		c := OpenCache(cmd)
		if writes {
			if _, _, err := c.Resolver().EnsureUserDir(); err != nil {
				log.WithError(err).Warnf("user directory unavailable")
			}
		}

		var result *multierror.Error
		if err := fn(ctx, cmd, c); err != nil {
			result = multierror.Append(result, err)
		}
		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
		return result.ErrorOrNil()
	}
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
