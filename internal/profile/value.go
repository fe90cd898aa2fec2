// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package profile

import (
	"os"
	"strconv"
	"strings"
)

// copyValue strips one pair of matching surrounding quotes from v and, when
// expand is set, replaces every ${NAME} with the environment variable NAME.
// Unset variables expand to "". An unterminated "${" is copied as is.
func copyValue(v string, expand bool) string {
	v = unquote(v)
	if !expand {
		return v
	}
	return expandEnv(v)
}

func unquote(v string) string {
	if len(v) > 1 && (v[0] == '\'' || v[0] == '"') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

func expandEnv(v string) string {
	if !strings.Contains(v, "${") {
		return v
	}

	var sb strings.Builder
	for {
		i := strings.Index(v, "${")
		if i < 0 {
			break
		}
		j := strings.IndexByte(v[i+2:], '}')
		if j < 0 {
			break
		}
		sb.WriteString(v[:i])
		sb.WriteString(os.Getenv(v[i+2 : i+2+j]))
		v = v[i+2+j+1:]
	}
	sb.WriteString(v)
	return sb.String()
}

// leadingInt parses an optionally signed decimal integer at the start of s,
// after leading blanks. Trailing text is ignored.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
