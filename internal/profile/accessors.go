// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tfctl/profcache/internal/codec"
	"github.com/tfctl/profcache/internal/log"
	"github.com/tfctl/profcache/internal/tree"
)

var (
	// ErrEmptyName is returned when a mutation names no section or key.
	ErrEmptyName = errors.New("section and key names must not be empty")

	// ErrLineBreak is returned when a written name or value contains a line
	// break, which the line format cannot represent.
	ErrLineBreak = errors.New("line breaks are not allowed")

	// ErrKeySyntax is returned for a key that would read back as something
	// else: one containing "=" or starting with "[".
	ErrKeySyntax = errors.New(`key must not contain "=" or start with "["`)
)

// GetString returns the value of key in section, or def when the profile,
// section, key or value is absent. The result has surrounding quotes removed
// and, unless disabled with WithEnvExpansion, ${NAME} tokens expanded. The
// same treatment applies to def. An empty key yields "".
func (c *Cache) GetString(name, section, key, def string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getString(name, section, key, def, c.expandEnv)
}

// GetRawString is GetString without environment expansion.
func (c *Cache) GetRawString(name, section, key, def string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getString(name, section, key, def, false)
}

// GetInt parses the leading integer of the value of key in section. It
// returns def when the value is absent or does not start with a number.
func (c *Cache) GetInt(name, section, key string, def int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.value(name, section, key)
	if !ok {
		return def
	}
	n, ok := leadingInt(copyValue(v, c.expandEnv))
	if !ok {
		return def
	}
	return n
}

// SetString stores value under key in section, creating both as needed. A
// value identical to the stored one is not a mutation and leaves the profile
// clean. Leading blanks of value are dropped.
func (c *Cache) SetString(name, section, key, value string) error {
	if err := checkNames(section, key); err != nil {
		return err
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("value for %s: %w", key, ErrLineBreak)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.resolve(name)
	if err != nil {
		return err
	}
	c.set(s, section, key, value)
	return nil
}

// DeleteKey removes key from section. Deleting a missing key is not an
// error.
func (c *Cache) DeleteKey(name, section, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.resolve(name)
	if err != nil {
		return err
	}
	if sec := s.tree.Section(section); sec != nil && sec.DeleteEntry(key) {
		c.markDirty(s)
	}
	return nil
}

// DeleteSection removes section with all its entries. Deleting a missing
// section is not an error.
func (c *Cache) DeleteSection(name, section string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.resolve(name)
	if err != nil {
		return err
	}
	if s.tree.DeleteSection(section) {
		c.markDirty(s)
	}
	return nil
}

// GetSection lists the entries of section as "name=value" strings, or bare
// names for entries without a value. With includeValues false only the names
// of entries that carry a value are listed. Blank entries are skipped. The
// bool reports whether the section exists.
func (c *Cache) GetSection(name, section string, includeValues bool) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.resolve(name)
	if err != nil {
		log.Debugf("get section: %v", err)
		return nil, false
	}
	sec := s.tree.Section(section)
	if sec == nil {
		return nil, false
	}

	items := []string{}
	for _, e := range sec.Entries {
		if e.IsBlank() || (!includeValues && !e.HasValue) {
			continue
		}
		item := copyValue(e.Name, c.expandEnv)
		if includeValues && e.HasValue {
			item += "=" + copyValue(e.Value, c.expandEnv)
		}
		items = append(items, item)
	}
	return items, true
}

// SetSection applies each "key=value" pair to section as SetString would.
// Pairs without "=" or with a key SetString would reject are skipped.
func (c *Cache) SetSection(name, section string, pairs []string) error {
	if strings.TrimSpace(section) == "" {
		return ErrEmptyName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.resolve(name)
	if err != nil {
		return err
	}
	for _, p := range pairs {
		i := strings.IndexByte(p, '=')
		if i < 0 || checkNames(section, p[:i]) != nil || strings.ContainsAny(p, "\r\n") {
			log.Debugf("set section %s: skipping %q", section, p)
			continue
		}
		c.set(s, section, p[:i], p[i+1:])
	}
	return nil
}

// SectionNames lists the named sections of the profile in file order.
func (c *Cache) SectionNames(name string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.resolve(name)
	if err != nil {
		log.Debugf("section names: %v", err)
		return nil
	}
	return s.tree.SectionNames()
}

// GetStruct decodes the checksummed hex value of key into dst, which must be
// exactly the record size. dst is left untouched unless it returns true.
func (c *Cache) GetStruct(name, section, key string, dst []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.value(name, section, key)
	if !ok {
		return false
	}
	if err := codec.DecodeInto(dst, v); err != nil {
		log.Debugf("struct %s/%s: %v", section, key, err)
		return false
	}
	return true
}

// SetStruct stores data under key as checksummed hex.
func (c *Cache) SetStruct(name, section, key string, data []byte) error {
	return c.SetString(name, section, key, codec.Encode(data))
}

// Snapshot returns a copy of the profile's tree.
func (c *Cache) Snapshot(name string) (*tree.Tree, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.resolve(name)
	if err != nil {
		return nil, err
	}
	return s.tree.Clone(), nil
}

// Dirty reports whether the profile is resident with unsaved changes.
func (c *Cache) Dirty(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.lookup(name)
	return err == nil && s != nil && s.dirty
}

func (c *Cache) getString(name, section, key, def string, expand bool) string {
	if strings.TrimSpace(key) == "" {
		return ""
	}
	v, ok := c.value(name, section, key)
	if !ok {
		v = def
	}
	return copyValue(v, expand)
}

// value returns the raw stored value. Callers hold c.mu.
func (c *Cache) value(name, section, key string) (string, bool) {
	s, err := c.resolve(name)
	if err != nil {
		log.Debugf("value %s/%s: %v", section, key, err)
		return "", false
	}
	sec := s.tree.Section(section)
	if sec == nil {
		return "", false
	}
	e := sec.Entry(key)
	if e == nil || !e.HasValue {
		return "", false
	}
	return e.Value, true
}

// set applies one write to a resident slot. Callers hold c.mu.
func (c *Cache) set(s *slot, section, key, value string) {
	sec, created := s.tree.FindOrCreateSection(section)
	e, eCreated := sec.FindOrCreateEntry(key)
	changed := e.SetValue(strings.TrimLeft(value, " \t"))
	if created || eCreated || changed {
		c.markDirty(s)
	}
}

func checkNames(section, key string) error {
	if strings.TrimSpace(section) == "" || strings.TrimSpace(key) == "" {
		return ErrEmptyName
	}
	if strings.ContainsAny(section+key, "\r\n") {
		return fmt.Errorf("%s/%s: %w", section, key, ErrLineBreak)
	}
	if strings.ContainsRune(key, '=') || strings.HasPrefix(strings.TrimSpace(key), "[") {
		return fmt.Errorf("%q: %w", key, ErrKeySyntax)
	}
	return nil
}
