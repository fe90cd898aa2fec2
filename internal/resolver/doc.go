// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package resolver maps a requested profile name to a canonical identity and
// an ordered list of backing-file candidates.
//
// A bare file name is looked up in the system directory. The candidates are
// tried in order on read:
//  1. <user dir>/<lower-cased base name>
//  2. the fully resolved path
//
// The first candidate is also where a modified profile is written, so user
// edits never touch the system copy.
package resolver
