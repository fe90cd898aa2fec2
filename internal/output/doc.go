// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders command results: sorted datasets as lipgloss tables
// or JSON/YAML documents, and whole profiles as INI, JSON or YAML with an
// optional gjson query.
package output
