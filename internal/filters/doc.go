// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of a command's result set with --filter
// expressions.
//
// A filter is key, operator and target. Several filters are separated by a
// comma, or by PROFCACHE_FILTER_DELIM when values contain commas, and a row
// is kept only when it passes all of them.
//
// Operators, each negated by a leading '!':
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than, numeric for numbers
//   - > : greater than, numeric for numbers
//   - @ : contains substring
//   - / : regular expression match
//
// Examples:
//
//   - "key^Wall" : keys starting with "Wall"
//   - "value!=" : entries with a non-empty value
//   - "sections>1" : profiles with more than one section
package filters
