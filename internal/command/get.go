// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/profcache/internal/meta"
	"github.com/tfctl/profcache/internal/profile"
)

// getCommandAction prints one value, or the default when it is absent.
func getCommandAction(_ context.Context, cmd *cli.Command, c *profile.Cache) error {
	args, err := RequireArgs(cmd, 3, 3)
	if err != nil {
		return err
	}

	get := c.GetString
	if cmd.Bool("raw") {
		get = c.GetRawString
	}
	fmt.Fprintln(Stdout(cmd), get(args[0], args[1], args[2], cmd.String("default")))
	return nil
}

// getintCommandAction prints the leading integer of a value.
func getintCommandAction(_ context.Context, cmd *cli.Command, c *profile.Cache) error {
	args, err := RequireArgs(cmd, 3, 3)
	if err != nil {
		return err
	}
	fmt.Fprintln(Stdout(cmd), c.GetInt(args[0], args[1], args[2], cmd.Int("default")))
	return nil
}

// getstructCommandAction decodes a checksummed record and prints it as plain
// hex.
func getstructCommandAction(_ context.Context, cmd *cli.Command, c *profile.Cache) error {
	args, err := RequireArgs(cmd, 3, 3)
	if err != nil {
		return err
	}

	buf := make([]byte, cmd.Int("size"))
	if !c.GetStruct(args[0], args[1], args[2], buf) {
		return fmt.Errorf("no valid %d-byte record at %s/%s", len(buf), args[1], args[2])
	}
	fmt.Fprintln(Stdout(cmd), hex.EncodeToString(buf))
	return nil
}

func getCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ProfileCommandBuilder{
		Name:      "get",
		Usage:     "read a value",
		UsageText: "profcache get [options] FILE SECTION KEY",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "default",
				Usage: "value printed when the key is absent",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "do not expand ${NAME} references",
			},
		},
		Action: getCommandAction,
		Meta:   meta,
	}).Build()
}

func getintCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ProfileCommandBuilder{
		Name:      "getint",
		Usage:     "read a value as an integer",
		UsageText: "profcache getint [options] FILE SECTION KEY",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "default",
				Usage: "number printed when the key is absent or not numeric",
			},
		},
		Action: getintCommandAction,
		Meta:   meta,
	}).Build()
}

func getstructCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ProfileCommandBuilder{
		Name:      "getstruct",
		Usage:     "read a checksummed binary record",
		UsageText: "profcache getstruct --size N [options] FILE SECTION KEY",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "size",
				Usage:    "record size in bytes",
				Required: true,
				Validator: func(value int) error {
					if value < 0 {
						return fmt.Errorf("must not be negative")
					}
					return nil
				},
			},
		},
		Action: getstructCommandAction,
		Meta:   meta,
	}).Build()
}
