// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/profcache/internal/meta"
	"github.com/tfctl/profcache/internal/output"
	"github.com/tfctl/profcache/internal/profile"
)

var statColumns = []string{"slot", "identity", "path", "encoding", "sections", "dirty", "stale", "modified"}

// statCommandAction loads each named profile and describes the cache slots.
func statCommandAction(_ context.Context, cmd *cli.Command, c *profile.Cache) error {
	args, err := RequireArgs(cmd, 1, -1)
	if err != nil {
		return err
	}

	for _, name := range args {
		if _, err := c.Snapshot(name); err != nil {
			return err
		}
	}

	var dataset output.Dataset
	for _, s := range c.Slots() {
		dataset = append(dataset, map[string]interface{}{
			"slot":     s.Position,
			"name":     s.Name,
			"identity": s.Identity,
			"path":     s.Path,
			"encoding": s.Encoding.String(),
			"sections": s.Sections,
			"dirty":    s.Dirty,
			"stale":    s.Stale,
			"modified": s.ModTime,
		})
	}

	st := c.Stats()
	cmd.Metadata["footer"] = fmt.Sprintf("%d/%d slots, %d loads, %d hits, %d misses, %d evictions",
		len(dataset), c.Capacity(), st.Loads, st.Hits, st.Misses, st.Evictions)

	output.SliceDiceSpit(dataset, statColumns, cmd, Stdout(cmd))
	return nil
}

func statCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ProfileCommandBuilder{
		Name:      "stat",
		Usage:     "resolve profiles and show how the cache holds them",
		UsageText: "profcache stat [options] FILE...",
		Action:    statCommandAction,
		Meta:      meta,
	}).Build()
}
