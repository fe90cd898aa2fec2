// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"io"
	"strings"
)

const crlf = "\r\n"

// String renders the tree as CRLF-terminated text without any encoding
// applied.
func (t *Tree) String() string {
	var sb strings.Builder
	for _, s := range t.Sections {
		if s.Header {
			if sb.Len() > 0 {
				sb.WriteString(crlf)
			}
			sb.WriteString("[")
			sb.WriteString(s.Name)
			sb.WriteString("]")
			sb.WriteString(crlf)
		}
		for _, e := range s.Entries {
			sb.WriteString(e.Name)
			if e.HasValue {
				sb.WriteString("=")
				sb.WriteString(e.Value)
			}
			sb.WriteString(crlf)
		}
	}
	return sb.String()
}

// Bytes returns the on-disk form of the tree in its Encoding.
func (t *Tree) Bytes() ([]byte, error) {
	return t.Encoding.encode([]byte(t.String()))
}

// WriteTo writes the on-disk form of the tree to w.
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	b, err := t.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}
