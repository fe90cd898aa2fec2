// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies how a backing file's text is stored on disk.
type Encoding int

const (
	// EncodingPlain is byte-transparent text without a byte order mark.
	EncodingPlain Encoding = iota
	// EncodingUTF8BOM is UTF-8 preceded by EF BB BF.
	EncodingUTF8BOM
	// EncodingUTF16LE is little-endian UTF-16 preceded by FF FE.
	EncodingUTF16LE
	// EncodingUTF16BE is big-endian UTF-16 preceded by FE FF.
	EncodingUTF16BE
)

var (
	bomUTF8    = []byte{0xef, 0xbb, 0xbf}
	bomUTF16LE = []byte{0xff, 0xfe}
	bomUTF16BE = []byte{0xfe, 0xff}
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8BOM:
		return "utf-8-bom"
	case EncodingUTF16LE:
		return "utf-16le"
	case EncodingUTF16BE:
		return "utf-16be"
	}
	return "plain"
}

// DetectEncoding inspects the byte order mark at the start of data.
func DetectEncoding(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return EncodingUTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		return EncodingUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return EncodingUTF16BE
	}
	return EncodingPlain
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case EncodingUTF8BOM:
		return unicode.UTF8BOM
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	}
	return nil
}

// decode strips the byte order mark and returns the text as UTF-8.
func (e Encoding) decode(data []byte) ([]byte, error) {
	c := e.codec()
	if c == nil {
		return data, nil
	}
	out, err := c.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s text: %w", e, err)
	}
	return out, nil
}

// encode converts UTF-8 text to the on-disk form, byte order mark included.
func (e Encoding) encode(text []byte) ([]byte, error) {
	c := e.codec()
	if c == nil {
		return text, nil
	}
	out, err := c.NewEncoder().Bytes(text)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s text: %w", e, err)
	}
	return out, nil
}
