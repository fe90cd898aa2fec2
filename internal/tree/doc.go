// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package tree holds the in-memory form of a profile file: an ordered list of
// sections, each an ordered list of entries. Parse and WriteTo convert between
// the tree and the on-disk line format while keeping the file's layout stable
// across a load and save.
//
// The on-disk format is one directive per line:
//
//	[Section]
//	name=value
//	bare name
//
// The first "=" always splits name from value and a leading "[...]" always
// starts a section. Comment syntax is not recognised; a line beginning with ";"
// is an ordinary entry. Lines are written with CRLF terminators.
//
// A "[]" header starts a section with no name. Its entries stay in it and are
// written back under "[]", but no lookup by name reaches them.
//
// Blank lines differ from a plain line-by-line reading in one place. WriteTo
// puts one blank line before every header after the first output line, so
// Parse drops exactly one blank line that directly precedes a header instead
// of keeping it as a blank entry of the section before. Two or more blank
// lines there still leave one blank entry. This keeps a load and save of a
// written file byte for byte identical.
package tree
