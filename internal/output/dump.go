// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/profcache/internal/tree"
)

// ErrQueryFormat is returned when a query is combined with INI output.
var ErrQueryFormat = errors.New("--query needs json or yaml output")

// Dump writes t to w as "ini", "json" or "yaml". JSON and YAML render each
// section as an object of its keys in file order; entries without a value are
// null and lines before the first header go under "". A non-empty query is a
// gjson path evaluated against the JSON form.
func Dump(t *tree.Tree, format, query string, w io.Writer) error {
	switch format {
	case "", "ini":
		if query != "" {
			return ErrQueryFormat
		}
		_, err := io.WriteString(w, strings.ReplaceAll(t.String(), "\r\n", "\n"))
		return err
	case "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	doc := ToJSON(t)
	if query != "" {
		res := gjson.GetBytes(doc, query)
		if !res.Exists() {
			return fmt.Errorf("query %q matched nothing", query)
		}
		doc = []byte(res.Raw)
	}

	if format == "json" {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, doc, "", "  "); err != nil {
			return err
		}
		pretty.WriteByte('\n')
		_, err := w.Write(pretty.Bytes())
		return err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(doc, &node); err != nil {
		return err
	}
	blockStyle(&node)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	return enc.Close()
}

// ToJSON renders t as a compact JSON object keeping section and key order.
// Blank lines are dropped. A repeated key keeps its first value. Sections
// under a "[]" header have no key of their own and are left out.
func ToJSON(t *tree.Tree) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	for i, sec := range t.Sections {
		if (i == 0 && !hasEntries(sec)) || (sec.Header && !sec.Addressable()) {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		writeString(&buf, sec.Name)
		buf.WriteString(":{")

		seen := map[string]bool{}
		firstKey := true
		for _, e := range sec.Entries {
			k := strings.ToLower(e.Name)
			if e.IsBlank() || seen[k] {
				continue
			}
			seen[k] = true
			if !firstKey {
				buf.WriteByte(',')
			}
			firstKey = false

			writeString(&buf, e.Name)
			buf.WriteByte(':')
			if e.HasValue {
				writeString(&buf, e.Value)
			} else {
				buf.WriteString("null")
			}
		}
		buf.WriteByte('}')
	}

	buf.WriteByte('}')
	return buf.Bytes()
}

// blockStyle drops the flow and quoting styles a JSON source leaves behind.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func hasEntries(s *tree.Section) bool {
	for _, e := range s.Entries {
		if !e.IsBlank() {
			return true
		}
	}
	return false
}

func writeString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}
