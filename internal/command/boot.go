// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/profcache/internal/boot"
	"github.com/tfctl/profcache/internal/hive"
	"github.com/tfctl/profcache/internal/log"
	"github.com/tfctl/profcache/internal/meta"
	"github.com/tfctl/profcache/internal/output"
)

// bootCommandAction runs the boot loader into a fresh hive and prints every
// value it stored.
func bootCommandAction(_ context.Context, cmd *cli.Command) error {
	args, err := RequireArgs(cmd, 0, 1)
	if err != nil {
		return err
	}

	path := cmd.String("boot")
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		path = boot.DefaultFile
	}

	store := hive.NewMemory()
	n, err := boot.Load(fs, path, store, boot.Root)
	if err != nil {
		return err
	}
	log.Debugf("boot values: %d", n)

	var dataset output.Dataset
	for _, item := range store.Items() {
		dataset = append(dataset, map[string]interface{}{
			"node":  item.Path,
			"name":  item.Name,
			"value": item.Value,
		})
	}
	output.SliceDiceSpit(dataset, []string{"node", "name", "value"}, cmd, Stdout(cmd))
	return nil
}

func bootCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "boot",
		Usage:     "load the boot file and show what it provides",
		UsageText: "profcache boot [options] [FILE]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  append([]cli.Flag{NewBootFlag(meta.Config.Source)}, NewGlobalFlags()...),
		Action: bootCommandAction,
	}
}
