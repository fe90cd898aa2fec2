// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package codec converts binary records to and from the checksummed hex text
// stored as profile values. Each byte becomes two upper-case hex digits, high
// nibble first, and the text ends with two more digits holding the sum of all
// bytes modulo 256.
package codec
