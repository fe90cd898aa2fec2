// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"strings"
)

// Entry is one logical line of a section. An Entry with an empty Name and no
// value represents a blank line.
type Entry struct {
	Name     string
	Value    string
	HasValue bool
}

// IsBlank reports whether the entry stands for a blank separator line.
func (e *Entry) IsBlank() bool {
	return e.Name == "" && !e.HasValue
}

// SetValue replaces the value and reports whether it changed.
func (e *Entry) SetValue(v string) bool {
	if e.HasValue && e.Value == v {
		return false
	}
	e.Value = v
	e.HasValue = true
	return true
}

// Section is a named, ordered group of entries. The leading section of every
// tree has an empty Name and holds the lines that precede the first header.
//
// Header is set for every section that starts with a header line. A "[]"
// header gives a section with Header set and an empty Name; it keeps its
// entries apart but no lookup by name can reach it.
type Section struct {
	Name    string
	Header  bool
	Entries []*Entry
}

// Addressable reports whether the section can be found by name.
func (s *Section) Addressable() bool {
	return s.Name != ""
}

// Entry returns the first entry whose name matches, ignoring case, or nil.
// Blank entries never match.
func (s *Section) Entry(name string) *Entry {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	for _, e := range s.Entries {
		if strings.EqualFold(e.Name, name) {
			return e
		}
	}
	return nil
}

// FindOrCreateEntry returns the matching entry, appending a new value-less
// entry when none exists. The bool reports whether it was created.
func (s *Section) FindOrCreateEntry(name string) (*Entry, bool) {
	if e := s.Entry(name); e != nil {
		return e, false
	}
	e := &Entry{Name: strings.TrimSpace(name)}
	s.Entries = append(s.Entries, e)
	return e, true
}

// DeleteEntry removes the first matching entry and reports whether one was
// found.
func (s *Section) DeleteEntry(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for i, e := range s.Entries {
		if strings.EqualFold(e.Name, name) {
			s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Section) appendBlank() {
	if n := len(s.Entries); n > 0 && s.Entries[n-1].IsBlank() {
		return
	}
	s.Entries = append(s.Entries, &Entry{})
}

// Tree is an ordered list of sections. Sections[0] is always the unnamed
// leading section.
type Tree struct {
	Sections []*Section
	Encoding Encoding
}

// New returns an empty tree holding only the unnamed leading section.
func New() *Tree {
	return &Tree{Sections: []*Section{{}}}
}

// Section returns the first named section matching name, ignoring case, or
// nil. The unnamed leading section is never returned.
func (t *Tree) Section(name string) *Section {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	for _, s := range t.Sections {
		if s.Addressable() && strings.EqualFold(s.Name, name) {
			return s
		}
	}
	return nil
}

// FindOrCreateSection returns the matching section, appending a new one when
// none exists. An empty name yields the unnamed leading section. The bool
// reports whether a section was created.
func (t *Tree) FindOrCreateSection(name string) (*Section, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		if len(t.Sections) == 0 || t.Sections[0].Header {
			t.Sections = append([]*Section{{}}, t.Sections...)
			return t.Sections[0], true
		}
		return t.Sections[0], false
	}
	if s := t.Section(name); s != nil {
		return s, false
	}
	s := &Section{Name: name, Header: true}
	t.Sections = append(t.Sections, s)
	return s, true
}

// DeleteSection removes the first named section matching name and reports
// whether one was found.
func (t *Tree) DeleteSection(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for i, s := range t.Sections {
		if s.Addressable() && strings.EqualFold(s.Name, name) {
			t.Sections = append(t.Sections[:i], t.Sections[i+1:]...)
			return true
		}
	}
	return false
}

// SectionNames returns the names of all named sections in file order.
// Physically duplicated sections are listed once per occurrence. Sections
// under a "[]" header have no name and are not listed.
func (t *Tree) SectionNames() []string {
	var names []string
	for _, s := range t.Sections {
		if s.Addressable() {
			names = append(names, s.Name)
		}
	}
	return names
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		Sections: make([]*Section, 0, len(t.Sections)),
		Encoding: t.Encoding,
	}
	for _, s := range t.Sections {
		cs := &Section{Name: s.Name, Header: s.Header, Entries: make([]*Entry, 0, len(s.Entries))}
		for _, e := range s.Entries {
			ce := *e
			cs.Entries = append(cs.Entries, &ce)
		}
		c.Sections = append(c.Sections, cs)
	}
	return c
}
