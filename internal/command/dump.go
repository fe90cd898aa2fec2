// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/profcache/internal/meta"
	"github.com/tfctl/profcache/internal/output"
	"github.com/tfctl/profcache/internal/profile"
)

// dumpCommandAction prints a whole profile as the cache currently holds it.
func dumpCommandAction(_ context.Context, cmd *cli.Command, c *profile.Cache) error {
	args, err := RequireArgs(cmd, 1, 1)
	if err != nil {
		return err
	}

	t, err := c.Snapshot(args[0])
	if err != nil {
		return err
	}
	return output.Dump(t, cmd.String("output"), cmd.String("query"), Stdout(cmd))
}

func dumpCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ProfileCommandBuilder{
		Name:      "dump",
		Usage:     "print a profile as ini, json or yaml",
		UsageText: "profcache dump [options] FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output format",
				Value:   "ini",
				Validator: func(value string) error {
					return FlagValidators(value, DumpFormatValidator)
				},
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "gjson path to print instead of the whole profile",
			},
		},
		Action: dumpCommandAction,
		Meta:   meta,
	}).Build()
}
