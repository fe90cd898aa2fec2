// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package profile

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/tfctl/profcache/internal/log"
	"github.com/tfctl/profcache/internal/resolver"
	"github.com/tfctl/profcache/internal/tree"
)

const (
	// DefaultCapacity is the number of profiles kept resident.
	DefaultCapacity = 10

	// DefaultProfile is the name used when a call passes an empty file name.
	DefaultProfile = "profcache.ini"
)

// Stats counts cache activity since the Cache was created.
type Stats struct {
	Hits        int
	Misses      int
	Loads       int
	Evictions   int
	Mutations   int
	Flushes     int
	FlushErrors int
}

// SlotInfo is a copy of one populated slot's bookkeeping.
type SlotInfo struct {
	Position int
	Name     string
	Identity string
	Path     string
	Dirty    bool
	Stale    bool
	ModTime  time.Time
	Sections int
	Encoding tree.Encoding
}

type slot struct {
	name    string
	loc     resolver.Location
	path    string
	tree    *tree.Tree
	dirty   bool
	stale   bool
	modTime time.Time
}

func (s *slot) empty() bool {
	return s.tree == nil
}

func (s *slot) clear() {
	*s = slot{}
}

// Option configures a Cache.
type Option func(*Cache)

// WithCapacity sets the number of slots. Values below one are ignored.
func WithCapacity(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithEnvExpansion controls whether ${NAME} tokens in values are replaced by
// environment variables on read. It is enabled by default.
func WithEnvExpansion(enabled bool) Option {
	return func(c *Cache) {
		c.expandEnv = enabled
	}
}

// Cache is a bounded most-recently-used cache of parsed profiles. The zero
// value is not usable; create one with New and release it with Close.
type Cache struct {
	mu        sync.Mutex
	fs        afero.Fs
	resolver  *resolver.Resolver
	slots     []*slot
	capacity  int
	expandEnv bool
	stats     Stats
}

// New returns a Cache reading and writing through r's file system.
func New(r *resolver.Resolver, opts ...Option) *Cache {
	c := &Cache{
		fs:        r.FS(),
		resolver:  r,
		capacity:  DefaultCapacity,
		expandEnv: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.slots = make([]*slot, c.capacity)
	for i := range c.slots {
		c.slots[i] = &slot{}
	}
	return c
}

// Capacity returns the number of slots.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Resolver returns the resolver the cache maps names with.
func (c *Cache) Resolver() *resolver.Resolver {
	return c.resolver
}

// Stats returns a copy of the activity counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Slots describes the populated slots, most recently used first.
func (c *Cache) Slots() []SlotInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []SlotInfo
	for i, s := range c.slots {
		if s.empty() {
			continue
		}
		out = append(out, SlotInfo{
			Position: i,
			Name:     s.name,
			Identity: s.loc.Identity,
			Path:     s.path,
			Dirty:    s.dirty,
			Stale:    s.stale,
			ModTime:  s.modTime,
			Sections: len(s.tree.SectionNames()),
			Encoding: s.tree.Encoding,
		})
	}
	return out
}

// Flush writes the named profile if it is resident and dirty. It does not
// load a profile that is not resident.
func (c *Cache) Flush(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.lookup(name)
	if err != nil || s == nil {
		return err
	}
	return c.flushIfDirty(s)
}

// Release flushes the named profile if dirty and frees its slot. Releasing a
// profile that is not resident is a no-op.
func (c *Cache) Release(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.lookup(name)
	if err != nil || s == nil {
		return err
	}
	log.Debugf("releasing profile %s", s.loc.Identity)
	ferr := c.flushIfDirty(s)
	s.clear()
	return ferr
}

// Close flushes every dirty profile and empties the cache. All flush
// failures are returned together.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var result *multierror.Error
	for _, s := range c.slots {
		if err := c.flushIfDirty(s); err != nil {
			result = multierror.Append(result, err)
		}
		s.clear()
	}
	return result.ErrorOrNil()
}

// lookup finds the resident slot for name without loading it. It returns
// nil, nil when the profile is not resident.
func (c *Cache) lookup(name string) (*slot, error) {
	if name == "" {
		name = DefaultProfile
	}
	loc, err := c.resolver.Resolve(name)
	if err != nil {
		return nil, err
	}
	for _, s := range c.slots {
		if !s.empty() && s.loc.Identity == loc.Identity {
			return s, nil
		}
	}
	return nil, nil
}

// resolve returns the slot for name, loading the profile into the head slot
// on a miss. Callers hold c.mu.
func (c *Cache) resolve(name string) (*slot, error) {
	if name == "" {
		name = DefaultProfile
	}

	// Repeated requests with the same spelling skip resolution.
	if head := c.slots[0]; !head.empty() && head.name == name {
		c.stats.Hits++
		c.checkStale(head)
		return head, nil
	}

	loc, err := c.resolver.Resolve(name)
	if err != nil {
		return nil, err
	}

	for i, s := range c.slots {
		if !s.empty() && s.loc.Identity == loc.Identity {
			c.stats.Hits++
			c.checkStale(s)
			c.promote(i)
			s.name = name
			return s, nil
		}
	}

	c.stats.Misses++
	_ = c.flushIfDirty(c.slots[0])

	i := c.freeSlot()
	if s := c.slots[i]; !s.empty() {
		c.evict(s)
	}
	c.promote(i)

	s := c.slots[0]
	c.load(s, name, loc)
	return s, nil
}

// freeSlot returns the index of the first empty slot, or the tail when every
// slot is populated.
func (c *Cache) freeSlot() int {
	for i, s := range c.slots {
		if s.empty() {
			return i
		}
	}
	return len(c.slots) - 1
}

// promote moves slot i to the head, shifting the slots before it down.
func (c *Cache) promote(i int) {
	if i == 0 {
		return
	}
	s := c.slots[i]
	copy(c.slots[1:i+1], c.slots[:i])
	c.slots[0] = s
}

func (c *Cache) evict(s *slot) {
	c.stats.Evictions++
	log.Debugf("evicting profile %s", s.loc.Identity)
	_ = c.flushIfDirty(s)
	s.clear()
}

// load populates s from the first readable candidate. A profile with no
// readable backing file gets an empty tree.
func (c *Cache) load(s *slot, name string, loc resolver.Location) {
	s.name = name
	s.loc = loc
	s.tree = tree.New()
	s.path = loc.WritePath()

	f, p, err := c.resolver.Open(loc)
	if err != nil {
		log.Debugf("no backing file for %s, starting empty", loc.Identity)
		return
	}
	defer f.Close() //nolint:errcheck

	st, err := f.Stat()
	if err != nil {
		log.WithError(err).Warnf("failed to stat %s, starting empty", p)
		return
	}
	t, err := tree.Parse(f)
	if err != nil {
		log.WithError(err).Warnf("failed to load %s, starting empty", p)
		return
	}

	s.tree = t
	s.path = p
	s.modTime = st.ModTime()
	c.stats.Loads++
	log.Debugf("loaded profile %s from %s", loc.Identity, p)
}

// checkStale compares the backing file's mtime with the one recorded at load
// or flush. A change is logged and recorded; the resident tree is kept.
func (c *Cache) checkStale(s *slot) {
	st, err := c.fs.Stat(s.path)
	var mtime time.Time
	if err == nil {
		mtime = st.ModTime()
	}
	if mtime.Equal(s.modTime) {
		return
	}
	if !s.stale {
		log.Infof("profile %s changed on disk since it was loaded", s.path)
	}
	s.stale = true
}

// flushIfDirty writes a dirty profile to its write path, creating the
// directory if needed. On failure the profile stays dirty.
func (c *Cache) flushIfDirty(s *slot) error {
	if s.empty() || !s.dirty {
		return nil
	}

	target := s.loc.WritePath()
	err := c.write(target, s.tree)
	if err != nil {
		c.stats.FlushErrors++
		log.WithError(err).Errorf("failed to flush profile %s", target)
		return fmt.Errorf("failed to flush %s: %w", target, err)
	}

	s.dirty = false
	s.stale = false
	s.path = target
	if st, err := c.fs.Stat(target); err == nil {
		s.modTime = st.ModTime()
	}
	c.stats.Flushes++
	log.Debugf("flushed profile %s to %s", s.loc.Identity, target)
	return nil
}

func (c *Cache) write(target string, t *tree.Tree) error {
	data, err := t.Bytes()
	if err != nil {
		return err
	}
	if err := c.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil { //nolint:mnd
		return err
	}
	return afero.WriteFile(c.fs, target, data, 0o644) //nolint:mnd
}

func (c *Cache) markDirty(s *slot) {
	s.dirty = true
	c.stats.Mutations++
}
