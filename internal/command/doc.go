// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for profcache. It wires flags,
// validators, actions, and shell completion for subcommands. Every command
// that touches a profile opens one profile.Cache and closes it, flushing
// pending edits, before returning.
package command
