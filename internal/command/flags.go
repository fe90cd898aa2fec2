// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/profcache/internal/profile"
)

// NewGlobalFlags returns the presentation flags shared by every command.
func NewGlobalFlags() (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   term.IsTerminal(int(os.Stdout.Fd())),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between table columns",
			Value: 2,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewCacheFlags returns the flags that locate profiles and size the cache.
// Each resolves flag, then environment, then the YAML config file at
// cfgPath, when one is given.
func NewCacheFlags(cfgPath string) (flags []cli.Flag) {
	userDir := &cli.StringFlag{
		Name:    "user-dir",
		Aliases: []string{"u"},
		Usage:   "per-user override directory, read first and written to",
		Sources: cli.NewValueSourceChain(cli.EnvVar("PROFCACHE_USER_DIR")),
	}
	systemDir := &cli.StringFlag{
		Name:    "system-dir",
		Aliases: []string{"d"},
		Usage:   "directory bare profile names resolve in",
		Sources: cli.NewValueSourceChain(cli.EnvVar("PROFCACHE_SYSTEM_DIR")),
	}
	slots := &cli.IntFlag{
		Name:    "slots",
		Usage:   "number of profiles kept in memory",
		Value:   profile.DefaultCapacity,
		Sources: cli.NewValueSourceChain(cli.EnvVar("PROFCACHE_SLOTS")),
		Validator: func(value int) error {
			return FlagValidators(value, SlotsValidator)
		},
	}

	if cfgPath != "" {
		ValueChainFromConfigFile("dirs.user", cfgPath, &userDir.Sources)
		ValueChainFromConfigFile("dirs.system", cfgPath, &systemDir.Sources)
		ValueChainFromConfigFile("cache.slots", cfgPath, &slots.Sources)
	}

	flags = []cli.Flag{userDir, systemDir, NewBootFlag(cfgPath), slots}
	return
}

// NewBootFlag returns the flag naming the boot file, resolved like the cache
// flags.
func NewBootFlag(cfgPath string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "boot",
		Aliases: []string{"b"},
		Usage:   "boot file supplying [Paths] defaults",
		Sources: cli.NewValueSourceChain(cli.EnvVar("PROFCACHE_BOOT_FILE")),
	}
	if cfgPath != "" {
		ValueChainFromConfigFile("boot.file", cfgPath, &flag.Sources)
	}
	return flag
}

// ValueChainFromConfigFile appends the YAML config value at the dotted key to
// a flag's Sources chain.
func ValueChainFromConfigFile(key string, path string, chain *cli.ValueSourceChain) {
	src := yaml.YAML(key, altsrc.StringSourcer(path))
	chain.Chain = append(chain.Chain, src)
}
