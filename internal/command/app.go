// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/profcache/internal/config"
	"github.com/tfctl/profcache/internal/log"
	"github.com/tfctl/profcache/internal/meta"
)

// InitApp builds the profcache command tree for args.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// A missing config file is normal, every setting has a default.
	cfg, err := config.Load()
	if err != nil {
		log.Debugf("config not loaded: %v", err)
	}

	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "profcache",
		Usage: "Profile Cache",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "profcache version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		getCommandBuilder(meta),
		getintCommandBuilder(meta),
		setCommandBuilder(meta),
		delCommandBuilder(meta),
		sectionsCommandBuilder(meta),
		sectionCommandBuilder(meta),
		setsectionCommandBuilder(meta),
		getstructCommandBuilder(meta),
		setstructCommandBuilder(meta),
		dumpCommandBuilder(meta),
		statCommandBuilder(meta),
		bootCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
