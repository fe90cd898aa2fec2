// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package hive is a hierarchical key store: named nodes addressed by
// "/"-separated paths, each holding named string values and child nodes.
// Node and value names compare case-insensitively and keep the spelling they
// were first stored with. The boot loader writes into a Store; the rest of
// profcache only reads from it.
package hive
