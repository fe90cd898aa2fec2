// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLength is returned when the text does not hold exactly the expected
	// number of hex digits.
	ErrLength = errors.New("encoded length mismatch")

	// ErrInvalidHex is returned when the text contains a non-hex character.
	ErrInvalidHex = errors.New("invalid hex digit")

	// ErrChecksum is returned when the trailing checksum does not match the
	// decoded bytes.
	ErrChecksum = errors.New("checksum mismatch")
)

const hexDigits = "0123456789ABCDEF"

// EncodedLen returns the length of the text produced for n bytes.
func EncodedLen(n int) int {
	return 2*n + 2
}

// Encode returns the checksummed hex form of data.
func Encode(data []byte) string {
	var sb strings.Builder
	sb.Grow(EncodedLen(len(data)))

	var sum byte
	for _, b := range data {
		sb.WriteByte(hexDigits[b>>4])
		sb.WriteByte(hexDigits[b&0x0f])
		sum += b
	}
	sb.WriteByte(hexDigits[sum>>4])
	sb.WriteByte(hexDigits[sum&0x0f])

	return sb.String()
}

// Decode parses text produced by Encode into a new slice of n bytes.
func Decode(text string, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative record size %d: %w", n, ErrLength)
	}
	if len(text) != EncodedLen(n) {
		return nil, fmt.Errorf("want %d hex digits, have %d: %w", EncodedLen(n), len(text), ErrLength)
	}

	out := make([]byte, n)
	var sum byte
	for i := 0; i < n; i++ {
		b, err := hexByte(text[2*i], text[2*i+1])
		if err != nil {
			return nil, fmt.Errorf("byte %d: %w", i, err)
		}
		out[i] = b
		sum += b
	}

	stored, err := hexByte(text[2*n], text[2*n+1])
	if err != nil {
		return nil, fmt.Errorf("checksum: %w", err)
	}
	if stored != sum {
		return nil, fmt.Errorf("stored %02X, computed %02X: %w", stored, sum, ErrChecksum)
	}

	return out, nil
}

// DecodeInto decodes text into dst, expecting exactly len(dst) bytes. dst is
// only written once the whole record, checksum included, has validated.
func DecodeInto(dst []byte, text string) error {
	b, err := Decode(text, len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

func hexByte(hi, lo byte) (byte, error) {
	h, ok := nibble(hi)
	if !ok {
		return 0, fmt.Errorf("%q: %w", hi, ErrInvalidHex)
	}
	l, ok := nibble(lo)
	if !ok {
		return 0, fmt.Errorf("%q: %w", lo, ErrInvalidHex)
	}
	return h<<4 | l, nil
}

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
