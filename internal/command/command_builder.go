// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"github.com/urfave/cli/v3"

	"github.com/tfctl/profcache/internal/meta"
)

// ProfileCommandBuilder constructs a cli.Command for subcommands that work on
// profiles through a cache. The builder wires metadata, appends the cache and
// global flags and wraps the action with WithCache. A command flag shadows a
// global flag of the same name.
type ProfileCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    CacheAction
	Writes    bool
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (pcb *ProfileCommandBuilder) Build() *cli.Command {
	flags := append([]cli.Flag{}, pcb.Flags...)
	taken := map[string]bool{}
	for _, f := range flags {
		for _, n := range f.Names() {
			taken[n] = true
		}
	}

	shared := append(NewCacheFlags(pcb.Meta.Config.Source), NewGlobalFlags()...)
	for _, f := range shared {
		if !clashes(f, taken) {
			flags = append(flags, f)
		}
	}

	return &cli.Command{
		Name:      pcb.Name,
		Usage:     pcb.Usage,
		UsageText: pcb.UsageText,
		Metadata: map[string]any{
			"meta": pcb.Meta,
		},
		Flags:  flags,
		Action: WithCache(pcb.Action, pcb.Writes),
	}
}

func clashes(f cli.Flag, taken map[string]bool) bool {
	for _, n := range f.Names() {
		if taken[n] {
			return true
		}
	}
	return false
}
