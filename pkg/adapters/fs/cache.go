package fs

import (
	"sync"
	"time"
)

// cacheEntry is the last value read for a key, tagged with the file stamp it
// was read at.
type cacheEntry struct {
	data    []byte
	modTime time.Time
	size    int64
}

// cache keeps decoded-from-disk values in memory so repeated reads of the
// session (one per command, many per watch cycle) skip the file read while
// the file is unchanged.
type cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	hits    int64
	misses  int64
}

func newCache() *cache {
	return &cache{entries: make(map[string]*cacheEntry)}
}

// Get returns the cached value if the file stamp still matches.
func (c *cache) Get(key string, modTime time.Time, size int64) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !e.modTime.Equal(modTime) || e.size != size {
		c.misses++
		return nil, false
	}
	c.hits++
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, true
}

// Set records the value read (or written) for key.
func (c *cache) Set(key string, data []byte, modTime time.Time, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	c.entries[key] = &cacheEntry{data: buf, modTime: modTime, size: size}
}

// Delete drops key from the cache.
func (c *cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of cached keys.
func (c *cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit and miss counters.
func (c *cache) Stats() (hits, misses int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
