// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package boot loads the one system boot file into a hive.Store at process
// start. Each [section] becomes a node under the chosen root and each
// key=value pair a value of that node. There is no caching and nothing is
// ever written back.
//
// Unlike the profile parser, the boot loader treats lines starting with ';'
// or '#' as comments. Profiles keep such lines as ordinary entries, so the
// two formats are deliberately not unified.
package boot
