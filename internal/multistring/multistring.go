// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package multistring packs string lists into caller-supplied buffers as a
// sequence of NUL-terminated strings closed by one more NUL, and copies single
// strings with NUL termination. Every function truncates to the buffer it is
// given and never writes past it.
package multistring

import "bytes"

// CopyString copies s into dst followed by a NUL, shortening s when dst is
// too small. It returns the number of bytes copied, not counting the NUL.
func CopyString(dst []byte, s string) int {
	n := len(dst)
	if n == 0 {
		return 0
	}
	if len(s) > n-1 {
		s = s[:n-1]
	}
	copy(dst, s)
	dst[len(s)] = 0
	return len(s)
}

// Pack writes items into dst as a multi-string. Empty items are skipped since
// they would end the list early. It returns the number of bytes written, not
// counting the final NUL.
//
// When dst is too small the last string that fits is cut short, two NULs
// close the buffer and the return value is len(dst)-2.
func Pack(dst []byte, items []string) int {
	n := len(dst)
	if n == 0 {
		return 0
	}

	pos := 0
	for _, s := range items {
		if s == "" {
			continue
		}
		room := n - pos - 2
		if room <= 0 || len(s) > room {
			if room > 0 {
				copy(dst[pos:], s[:room])
			}
			if n < 2 {
				dst[0] = 0
				return 0
			}
			dst[n-2] = 0
			dst[n-1] = 0
			return n - 2
		}
		copy(dst[pos:], s)
		pos += len(s)
		dst[pos] = 0
		pos++
	}

	dst[pos] = 0
	if pos == 0 && n > 1 {
		dst[1] = 0
	}
	return pos
}

// Join returns items as a newly allocated multi-string.
func Join(items []string) []byte {
	var buf bytes.Buffer
	for _, s := range items {
		if s == "" {
			continue
		}
		buf.WriteString(s)
		buf.WriteByte(0)
	}
	buf.WriteByte(0)
	return buf.Bytes()
}

// Unpack splits a multi-string into its strings, stopping at the first empty
// string. A final string missing its NUL is still returned.
func Unpack(b []byte) []string {
	var out []string
	for len(b) > 0 {
		i := bytes.IndexByte(b, 0)
		if i == 0 {
			break
		}
		if i < 0 {
			out = append(out, string(b))
			break
		}
		out = append(out, string(b[:i]))
		b = b[i+1:]
	}
	return out
}
