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

// setCommandAction stores one value.
func setCommandAction(_ context.Context, cmd *cli.Command, c *profile.Cache) error {
	args, err := RequireArgs(cmd, 4, 4)
	if err != nil {
		return err
	}
	return c.SetString(args[0], args[1], args[2], args[3])
}

// setstructCommandAction stores plain hex input as a checksummed record.
func setstructCommandAction(_ context.Context, cmd *cli.Command, c *profile.Cache) error {
	args, err := RequireArgs(cmd, 4, 4)
	if err != nil {
		return err
	}

	data, err := hex.DecodeString(args[3])
	if err != nil {
		return fmt.Errorf("record must be hex: %w", err)
	}
	return c.SetStruct(args[0], args[1], args[2], data)
}

// delCommandAction deletes a key, or a whole section when no key is given.
func delCommandAction(_ context.Context, cmd *cli.Command, c *profile.Cache) error {
	args, err := RequireArgs(cmd, 2, 3)
	if err != nil {
		return err
	}
	if len(args) == 2 {
		return c.DeleteSection(args[0], args[1])
	}
	return c.DeleteKey(args[0], args[1], args[2])
}

func setCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ProfileCommandBuilder{
		Name:      "set",
		Usage:     "write a value",
		UsageText: "profcache set [options] FILE SECTION KEY VALUE",
		Action:    setCommandAction,
		Writes:    true,
		Meta:      meta,
	}).Build()
}

func setstructCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ProfileCommandBuilder{
		Name:      "setstruct",
		Usage:     "write a binary record given as hex",
		UsageText: "profcache setstruct [options] FILE SECTION KEY HEX",
		Action:    setstructCommandAction,
		Writes:    true,
		Meta:      meta,
	}).Build()
}

func delCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ProfileCommandBuilder{
		Name:      "del",
		Usage:     "delete a key or a section",
		UsageText: "profcache del [options] FILE SECTION [KEY]",
		Action:    delCommandAction,
		Writes:    true,
		Meta:      meta,
	}).Build()
}
