package assets

import "sync"

// Cache deduplicates load requests: callers look a spec up before asking
// the loader, and insert the returned handle afterwards. The cache keeps
// its own clone of every inserted handle so cached slots stay alive until
// Remove or Clear.
type Cache[A any] struct {
	mu      sync.RWMutex
	entries map[AssetSpec]Handle[A]
}

func NewCache[A any]() *Cache[A] {
	return &Cache[A]{
		entries: make(map[AssetSpec]Handle[A]),
	}
}

// Get returns a clone of the cached handle for the spec, if any.
func (c *Cache[A]) Get(spec AssetSpec) (Handle[A], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	h, ok := c.entries[spec]
	if !ok {
		return Handle[A]{}, false
	}
	return h.Clone(), true
}

// Insert stores a clone of the handle under the spec. An existing entry
// for the same spec is released first.
func (c *Cache[A]) Insert(spec AssetSpec, h Handle[A]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[spec]; ok {
		old.Release()
	}
	c.entries[spec] = h.Clone()
}

// Remove drops the cache's clone for the spec.
func (c *Cache[A]) Remove(spec AssetSpec) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.entries[spec]; ok {
		h.Release()
		delete(c.entries, spec)
	}
}

// Clear releases every cached handle.
func (c *Cache[A]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for spec, h := range c.entries {
		h.Release()
		delete(c.entries, spec)
	}
}

func (c *Cache[A]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
