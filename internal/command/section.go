// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/profcache/internal/meta"
	"github.com/tfctl/profcache/internal/multistring"
	"github.com/tfctl/profcache/internal/output"
	"github.com/tfctl/profcache/internal/profile"
)

// sectionsCommandAction lists the section names of a profile.
func sectionsCommandAction(_ context.Context, cmd *cli.Command, c *profile.Cache) error {
	args, err := RequireArgs(cmd, 1, 1)
	if err != nil {
		return err
	}

	var dataset output.Dataset
	for _, name := range c.SectionNames(args[0]) {
		dataset = append(dataset, map[string]interface{}{"section": name})
	}
	output.SliceDiceSpit(dataset, []string{"section"}, cmd, Stdout(cmd))
	return nil
}

// sectionCommandAction lists the entries of one section.
func sectionCommandAction(_ context.Context, cmd *cli.Command, c *profile.Cache) error {
	args, err := RequireArgs(cmd, 2, 2)
	if err != nil {
		return err
	}

	keysOnly := cmd.Bool("keys")
	items, ok := c.GetSection(args[0], args[1], !keysOnly)
	if !ok {
		return fmt.Errorf("no section [%s] in %s", args[1], args[0])
	}

	columns := []string{"key", "value"}
	if keysOnly {
		columns = columns[:1]
	}

	var dataset output.Dataset
	for _, item := range items {
		key, value, _ := strings.Cut(item, "=")
		dataset = append(dataset, map[string]interface{}{"key": key, "value": value})
	}
	output.SliceDiceSpit(dataset, columns, cmd, Stdout(cmd))
	return nil
}

// setsectionCommandAction applies key=value arguments to a section. The
// pairs travel as one multi-string, the same shape WriteSection takes.
func setsectionCommandAction(_ context.Context, cmd *cli.Command, c *profile.Cache) error {
	args, err := RequireArgs(cmd, 3, -1)
	if err != nil {
		return err
	}
	if !c.WriteSection(args[1], multistring.Join(args[2:]), args[0]) {
		return fmt.Errorf("failed to write section [%s] in %s", args[1], args[0])
	}
	return nil
}

func sectionsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ProfileCommandBuilder{
		Name:      "sections",
		Usage:     "list the sections of a profile",
		UsageText: "profcache sections [options] FILE",
		Action:    sectionsCommandAction,
		Meta:      meta,
	}).Build()
}

func sectionCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ProfileCommandBuilder{
		Name:      "section",
		Usage:     "list the entries of a section",
		UsageText: "profcache section [options] FILE SECTION",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "keys",
				Aliases: []string{"k"},
				Usage:   "list key names only",
			},
		},
		Action: sectionCommandAction,
		Meta:   meta,
	}).Build()
}

func setsectionCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ProfileCommandBuilder{
		Name:      "setsection",
		Usage:     "write several key=value pairs into a section",
		UsageText: "profcache setsection [options] FILE SECTION KEY=VALUE...",
		Action:    setsectionCommandAction,
		Writes:    true,
		Meta:      meta,
	}).Build()
}
