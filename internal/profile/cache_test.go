// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package profile

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/profcache/internal/resolver"
	"github.com/tfctl/profcache/internal/tree"
)

const (
	sysDir  = "/etc/profcache"
	userDir = "/home/u/.config/profcache"
)

// newTestCache returns a Cache over an in-memory file system seeded with the
// given system-directory files.
func newTestCache(t *testing.T, files map[string]string, opts ...Option) (*Cache, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, sysDir+"/"+name, []byte(body), 0o644))
	}
	return New(resolver.New(fs, sysDir, userDir), opts...), fs
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(b)
}

func identities(c *Cache) []string {
	var out []string
	for _, s := range c.Slots() {
		out = append(out, s.Identity)
	}
	return out
}

func TestDesktopScenario(t *testing.T) {
	c, fs := newTestCache(t, map[string]string{
		"desktop.ini": "[Desktop]\r\nWallpaper=foo.bmp\r\n",
	})

	assert.Equal(t, "foo.bmp", c.GetString("desktop.ini", "Desktop", "Wallpaper", "none"))
	assert.Equal(t, "none", c.GetString("desktop.ini", "Desktop", "Missing", "none"))

	require.NoError(t, c.SetString("desktop.ini", "Desktop", "Wallpaper", "bar.bmp"))
	require.NoError(t, c.Flush("desktop.ini"))

	assert.Contains(t, readFile(t, fs, userDir+"/desktop.ini"), "Wallpaper=bar.bmp\r\n")
	assert.Contains(t, readFile(t, fs, sysDir+"/desktop.ini"), "Wallpaper=foo.bmp", "system copy untouched")

	fresh := New(resolver.New(fs, sysDir, userDir))
	assert.Equal(t, "bar.bmp", fresh.GetString("desktop.ini", "desktop", "wallpaper", "none"))
}

func TestMissingFileStartsEmpty(t *testing.T) {
	c, fs := newTestCache(t, nil)

	assert.Equal(t, "dflt", c.GetString("new.ini", "s", "k", "dflt"))
	assert.False(t, c.Dirty("new.ini"))
	assert.Equal(t, 0, c.Stats().Loads)

	require.NoError(t, c.SetString("new.ini", "s", "k", "v"))
	require.NoError(t, c.Close())
	assert.Equal(t, "[s]\r\nk=v\r\n", readFile(t, fs, userDir+"/new.ini"))
}

func TestNoOpWriteDoesNotDirty(t *testing.T) {
	c, _ := newTestCache(t, nil)

	require.NoError(t, c.SetString("a.ini", "s", "k", "v"))
	require.NoError(t, c.SetString("a.ini", "s", "k", "v"))
	assert.Equal(t, 1, c.Stats().Mutations)

	require.NoError(t, c.Flush("a.ini"))
	assert.False(t, c.Dirty("a.ini"))

	require.NoError(t, c.SetString("a.ini", "s", "k", "  v"))
	assert.False(t, c.Dirty("a.ini"), "leading blanks are dropped before comparing")
	require.NoError(t, c.Flush("a.ini"))

	stats := c.Stats()
	assert.Equal(t, 1, stats.Mutations)
	assert.Equal(t, 1, stats.Flushes)
}

func TestCacheBound(t *testing.T) {
	files := map[string]string{}
	for i := 0; i < 4; i++ {
		files[fmt.Sprintf("p%d.ini", i)] = fmt.Sprintf("[s]\r\nk=%d\r\n", i)
	}
	c, _ := newTestCache(t, files, WithCapacity(3))

	for i := 0; i < 4; i++ {
		assert.Equal(t, fmt.Sprint(i), c.GetString(fmt.Sprintf("p%d.ini", i), "s", "k", ""))
	}

	assert.Len(t, c.Slots(), 3)
	assert.Equal(t, []string{sysDir + "/p3.ini", sysDir + "/p2.ini", sysDir + "/p1.ini"}, identities(c))
	assert.Equal(t, 1, c.Stats().Evictions)

	// p0 was evicted first and needs a fresh parse.
	loads := c.Stats().Loads
	assert.Equal(t, "0", c.GetString("p0.ini", "s", "k", ""))
	assert.Equal(t, loads+1, c.Stats().Loads)
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestCache(t, nil, WithCapacity(3))

	for _, n := range []string{"a.ini", "b.ini", "c.ini", "a.ini", "d.ini"} {
		c.GetString(n, "s", "k", "")
	}

	assert.Equal(t, []string{sysDir + "/d.ini", sysDir + "/a.ini", sysDir + "/c.ini"}, identities(c))

	stats := c.Stats()
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 4, stats.Misses)
}

func TestEvictionFlushesDirtyProfile(t *testing.T) {
	c, fs := newTestCache(t, nil, WithCapacity(2))

	require.NoError(t, c.SetString("a.ini", "s", "k", "1"))
	c.GetString("b.ini", "s", "k", "")
	assert.Equal(t, "[s]\r\nk=1\r\n", readFile(t, fs, userDir+"/a.ini"), "head flushed before a miss")

	require.NoError(t, c.SetString("b.ini", "s", "k", "2"))
	c.GetString("c.ini", "s", "k", "")
	c.GetString("d.ini", "s", "k", "")
	assert.Equal(t, "[s]\r\nk=2\r\n", readFile(t, fs, userDir+"/b.ini"))
}

func TestEquivalentNamesShareSlot(t *testing.T) {
	c, _ := newTestCache(t, map[string]string{"app.ini": "[s]\r\nk=v\r\n"})

	assert.Equal(t, "v", c.GetString("app.ini", "s", "k", ""))
	assert.Equal(t, "v", c.GetString(sysDir+"/APP.INI", "s", "k", ""))
	assert.Equal(t, "v", c.GetString(`C:\etc\profcache\App.ini`, "s", "k", ""))

	assert.Len(t, c.Slots(), 1)
	assert.Equal(t, 1, c.Stats().Loads)
}

func TestReleaseFlushesThenFrees(t *testing.T) {
	c, fs := newTestCache(t, nil)

	require.NoError(t, c.SetString("a.ini", "s", "k", "v"))
	require.NoError(t, c.Release("a.ini"))

	assert.Empty(t, c.Slots())
	assert.Equal(t, "[s]\r\nk=v\r\n", readFile(t, fs, userDir+"/a.ini"))
	assert.Equal(t, "v", c.GetString("a.ini", "s", "k", ""))
	assert.Equal(t, 1, c.Stats().Loads)

	assert.NoError(t, c.Release("never-opened.ini"))
}

func TestDefaultProfile(t *testing.T) {
	c, fs := newTestCache(t, map[string]string{DefaultProfile: "[s]\r\nk=shared\r\n"})

	assert.Equal(t, "shared", c.GetString("", "s", "k", ""))
	require.NoError(t, c.SetString("", "s", "k", "changed"))
	require.NoError(t, c.Close())
	assert.Contains(t, readFile(t, fs, userDir+"/"+DefaultProfile), "k=changed")
}

func TestStaleProfileIsNotReparsed(t *testing.T) {
	c, fs := newTestCache(t, map[string]string{"a.ini": "[s]\r\nk=old\r\n"})
	assert.Equal(t, "old", c.GetString("a.ini", "s", "k", ""))

	require.NoError(t, afero.WriteFile(fs, sysDir+"/a.ini", []byte("[s]\r\nk=new\r\n"), 0o644))
	later := time.Now().Add(time.Hour)
	require.NoError(t, fs.Chtimes(sysDir+"/a.ini", later, later))

	assert.Equal(t, "old", c.GetString("a.ini", "s", "k", ""))
	slots := c.Slots()
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Stale)
	assert.Equal(t, 1, c.Stats().Loads)
}

func TestFlushFailureKeepsDirty(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, sysDir+"/a.ini", []byte("[s]\r\nk=1\r\n"), 0o644))
	c := New(resolver.New(afero.NewReadOnlyFs(base), sysDir, userDir))

	require.NoError(t, c.SetString("a.ini", "s", "k", "2"), "mutators never see flush failures")
	assert.Error(t, c.Flush("a.ini"))
	assert.True(t, c.Dirty("a.ini"))
	assert.Equal(t, "2", c.GetString("a.ini", "s", "k", ""))
	assert.Equal(t, 1, c.Stats().FlushErrors)

	assert.Error(t, c.Close())
}

func TestInvalidNameFallsBackToDefault(t *testing.T) {
	c, _ := newTestCache(t, nil)

	assert.Equal(t, "dflt", c.GetString("/etc/", "s", "k", "dflt"))
	assert.Equal(t, 7, c.GetInt("", "s", "k", 7))
	assert.ErrorIs(t, c.SetString("bad\x00", "s", "k", "v"), resolver.ErrInvalidName)
	assert.Nil(t, c.SectionNames("/"))
}

func TestEmptyHeaderKeepsEntriesApart(t *testing.T) {
	c, fs := newTestCache(t, map[string]string{
		"e.ini": "[a]\r\nx=1\r\n\r\n[]\r\nz=3\r\n",
	})

	assert.Equal(t, "absent", c.GetString("e.ini", "a", "z", "absent"))
	assert.Equal(t, []string{"a"}, c.SectionNames("e.ini"))

	require.NoError(t, c.SetString("e.ini", "a", "x", "2"))
	require.NoError(t, c.Close())

	assert.Equal(t, "[a]\r\nx=2\r\n\r\n[]\r\nz=3\r\n", readFile(t, fs, userDir+"/e.ini"))
}

func TestUTF16ProfileKeepsEncoding(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := tree.New()
	src.Encoding = tree.EncodingUTF16LE
	s, _ := src.FindOrCreateSection("s")
	e, _ := s.FindOrCreateEntry("k")
	e.SetValue("v")
	b, err := src.Bytes()
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, sysDir+"/wide.ini", b, 0o644))

	c := New(resolver.New(fs, sysDir, userDir))
	assert.Equal(t, "v", c.GetString("wide.ini", "s", "k", ""))
	require.NoError(t, c.SetString("wide.ini", "s", "k", "w"))
	require.NoError(t, c.Close())

	out, err := afero.ReadFile(fs, userDir+"/wide.ini")
	require.NoError(t, err)
	assert.Equal(t, tree.EncodingUTF16LE, tree.DetectEncoding(out))
}

func TestConcurrentAccess(t *testing.T) {
	c, _ := newTestCache(t, nil, WithCapacity(3))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			name := fmt.Sprintf("p%d.ini", g%5)
			for i := 0; i < 50; i++ {
				_ = c.SetString(name, "s", fmt.Sprintf("k%d", g), fmt.Sprint(i))
				c.GetString(name, "s", "k0", "")
			}
		}(g)
	}
	wg.Wait()

	require.NoError(t, c.Close())
	for g := 0; g < 8; g++ {
		name := fmt.Sprintf("p%d.ini", g%5)
		assert.Equal(t, "49", c.GetString(name, "s", fmt.Sprintf("k%d", g), ""))
	}
}
