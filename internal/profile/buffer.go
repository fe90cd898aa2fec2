// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package profile

import (
	"github.com/tfctl/profcache/internal/multistring"
)

// ReadString copies the value of key into buf, NUL-terminated and truncated
// to fit, and returns the number of bytes copied before the NUL. With both
// section and key empty it instead fills buf with the section names as a
// multi-string. An empty key alone yields an empty result.
func (c *Cache) ReadString(section, key, def string, buf []byte, filename string) int {
	if section == "" && key == "" {
		return multistring.Pack(buf, c.SectionNames(filename))
	}
	if key == "" {
		return multistring.CopyString(buf, "")
	}
	return multistring.CopyString(buf, c.GetString(filename, section, key, def))
}

// ReadInt is GetInt with the classic argument order.
func (c *Cache) ReadInt(section, key string, def int, filename string) int {
	return c.GetInt(filename, section, key, def)
}

// WriteString stores, deletes or releases depending on which arguments are
// nil:
//   - all three nil: flush and release the profile; reports false
//   - key nil: delete section
//   - value nil: delete key
//
// Otherwise it stores value and reports whether the write was accepted.
func (c *Cache) WriteString(section, key, value *string, filename string) bool {
	switch {
	case section == nil && key == nil && value == nil:
		_ = c.Release(filename)
		return false
	case section == nil:
		return false
	case key == nil:
		return c.DeleteSection(filename, *section) == nil
	case value == nil:
		return c.DeleteKey(filename, *section, *key) == nil
	}
	return c.SetString(filename, *section, *key, *value) == nil
}

// ReadSection fills buf with the entries of section as a multi-string of
// "name=value" strings. See multistring.Pack for the truncation contract.
func (c *Cache) ReadSection(section string, buf []byte, filename string) int {
	items, _ := c.GetSection(filename, section, true)
	return multistring.Pack(buf, items)
}

// WriteSection applies a "key=value\x00key=value\x00\x00" multi-string to
// section. A nil multi-string deletes the section.
func (c *Cache) WriteSection(section string, multi []byte, filename string) bool {
	if multi == nil {
		return c.DeleteSection(filename, section) == nil
	}
	return c.SetSection(filename, section, multistring.Unpack(multi)) == nil
}

// ReadSectionNames fills buf with the profile's section names as a
// multi-string.
func (c *Cache) ReadSectionNames(buf []byte, filename string) int {
	return multistring.Pack(buf, c.SectionNames(filename))
}

// ReadStruct decodes the record stored under key into buf. buf is only
// written on success.
func (c *Cache) ReadStruct(section, key string, buf []byte, filename string) bool {
	return c.GetStruct(filename, section, key, buf)
}

// WriteStruct stores buf under key as checksummed hex. With all three of
// section, key and buf nil it flushes and releases the profile and reports
// false; a nil buf alone deletes key.
func (c *Cache) WriteStruct(section, key *string, buf []byte, filename string) bool {
	switch {
	case section == nil && key == nil && buf == nil:
		_ = c.Release(filename)
		return false
	case section == nil || key == nil:
		return false
	case buf == nil:
		return c.DeleteKey(filename, *section, *key) == nil
	}
	return c.SetStruct(filename, *section, *key, buf) == nil
}
