// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package hive

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNotFound is returned when a node or value does not exist.
var ErrNotFound = errors.New("not found")

// Store is the get/set/enumerate surface of a hierarchical key store.
type Store interface {
	// SetValue stores value as name under the node at path, creating the
	// node and its parents as needed.
	SetValue(path, name, value string) error
	// Value returns the named value of the node at path.
	Value(path, name string) (string, error)
	// SubNodes lists the child node names of the node at path.
	SubNodes(path string) ([]string, error)
	// ValueNames lists the value names of the node at path.
	ValueNames(path string) ([]string, error)
}

// Item is one value with the path of the node holding it.
type Item struct {
	Path  string
	Name  string
	Value string
}

type node struct {
	name     string
	children map[string]*node
	childOrd []string
	values   map[string]string
	names    map[string]string
	valueOrd []string
}

func newNode(name string) *node {
	return &node{
		name:     name,
		children: map[string]*node{},
		values:   map[string]string{},
		names:    map[string]string{},
	}
}

// Memory is an in-memory Store safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	root *node
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{root: newNode("")}
}

// SetValue implements Store.
func (m *Memory) SetValue(path, name, value string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("set %s: empty value name", path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.root
	for _, seg := range split(path) {
		k := strings.ToLower(seg)
		c, ok := n.children[k]
		if !ok {
			c = newNode(seg)
			n.children[k] = c
			n.childOrd = append(n.childOrd, k)
		}
		n = c
	}

	k := strings.ToLower(name)
	if _, ok := n.values[k]; !ok {
		n.names[k] = name
		n.valueOrd = append(n.valueOrd, k)
	}
	n.values[k] = value
	return nil
}

// Value implements Store.
func (m *Memory) Value(path, name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, err := m.find(path)
	if err != nil {
		return "", err
	}
	v, ok := n.values[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("value %s in %s: %w", name, path, ErrNotFound)
	}
	return v, nil
}

// SubNodes implements Store. Names are returned in creation order.
func (m *Memory) SubNodes(path string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, err := m.find(path)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(n.childOrd))
	for _, k := range n.childOrd {
		out = append(out, n.children[k].name)
	}
	return out, nil
}

// ValueNames implements Store. Names are returned in creation order.
func (m *Memory) ValueNames(path string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, err := m.find(path)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(n.valueOrd))
	for _, k := range n.valueOrd {
		out = append(out, n.names[k])
	}
	return out, nil
}

// Items returns every value in the store, depth first in creation order.
func (m *Memory) Items() []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Item
	var walk func(n *node, path string)
	walk = func(n *node, path string) {
		for _, k := range n.valueOrd {
			out = append(out, Item{Path: path, Name: n.names[k], Value: n.values[k]})
		}
		for _, k := range n.childOrd {
			c := n.children[k]
			walk(c, Join(path, c.name))
		}
	}
	walk(m.root, "")
	return out
}

// Join joins path segments with "/", skipping empty ones.
func Join(segs ...string) string {
	var parts []string
	for _, s := range segs {
		parts = append(parts, split(s)...)
	}
	return strings.Join(parts, "/")
}

func (m *Memory) find(path string) (*node, error) {
	n := m.root
	for _, seg := range split(path) {
		c, ok := n.children[strings.ToLower(seg)]
		if !ok {
			return nil, fmt.Errorf("node %s: %w", path, ErrNotFound)
		}
		n = c
	}
	return n, nil
}

func split(path string) []string {
	var out []string
	for _, seg := range strings.Split(path, "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
