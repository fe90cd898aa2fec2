// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tfctl/profcache/internal/log"
)

// Parse reads a profile file from r. A header line without a closing bracket
// is logged and skipped; the only error returned is a failure to read or
// decode r.
//
// Runs of blank lines collapse to a single blank entry. A single blank line
// directly before a section header is the separator WriteTo emits and is not
// stored.
func Parse(r io.Reader) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses an in-memory profile file. See Parse.
func ParseBytes(data []byte) (*Tree, error) {
	enc := DetectEncoding(data)
	text, err := enc.decode(data)
	if err != nil {
		return nil, err
	}

	t := New()
	t.Encoding = enc

	if len(text) == 0 {
		return t, nil
	}

	cur := t.Sections[0]
	pending := 0

	lines := strings.Split(string(text), "\n")
	if bytes.HasSuffix(text, []byte("\n")) {
		lines = lines[:len(lines)-1]
	}

	for n, raw := range lines {
		line := trimLine(raw)
		if line == "" {
			pending++
			continue
		}

		if line[0] == '[' {
			end := strings.LastIndexByte(line, ']')
			if end < 0 {
				log.Warnf("invalid section header at line %d: %q", n+1, line)
				continue
			}

			// One blank line before a header is the separator; anything more
			// was a blank entry of the section being closed.
			if pending >= 2 {
				cur.appendBlank()
			}
			pending = 0

			cur = &Section{Name: strings.TrimSpace(line[1:end]), Header: true}
			t.Sections = append(t.Sections, cur)
			continue
		}

		if pending > 0 {
			cur.appendBlank()
			pending = 0
		}

		e := &Entry{Name: line}
		if i := strings.IndexByte(line, '='); i >= 0 {
			e.Name = strings.TrimSpace(line[:i])
			e.Value = strings.TrimLeft(line[i+1:], spaceChars)
			e.HasValue = true
		}
		cur.Entries = append(cur.Entries, e)
	}

	if pending > 0 {
		cur.appendBlank()
	}

	return t, nil
}

// spaceChars are the characters trimmed from both ends of every line: blanks,
// CR, and the other control characters including the legacy 0x1A EOF marker.
const spaceChars = "\x00\x01\x02\x03\x04\x05\x06\x07\x08\t\n\v\f\r\x0e\x0f" +
	"\x10\x11\x12\x13\x14\x15\x16\x17\x18\x19\x1a\x1b\x1c\x1d\x1e\x1f "

func trimLine(s string) string {
	return strings.Trim(s, spaceChars)
}
