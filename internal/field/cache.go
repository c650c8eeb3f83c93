package field

import (
	"sync"

	"ff7-field-tools/internal/tex"
)

// Cache memoizes decoded textures by filename on top of a Resolver.
// The codec layer itself never caches; callers that re-expand the same
// texture repeatedly layer this on. Safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	src   Resolver
}

type cacheEntry struct {
	tex *tex.Texture // nil when resolution or decoding failed
}

// NewCache wraps a resolver with a texture cache.
func NewCache(src Resolver) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		src:   src,
	}
}

// Texture resolves and decodes name, caching the result. Failures are
// cached too, so a missing texture costs one lookup, not one per
// access. Returns nil when the texture cannot be loaded.
func (c *Cache) Texture(name string) *tex.Texture {
	c.mu.RLock()
	if entry, ok := c.items[name]; ok {
		c.mu.RUnlock()
		return entry.tex
	}
	c.mu.RUnlock()

	var decoded *tex.Texture
	if data, err := c.src.Resolve(name); err == nil {
		if t, err := tex.Decode(data); err == nil {
			decoded = t
		}
	}

	c.mu.Lock()
	if entry, ok := c.items[name]; ok {
		c.mu.Unlock()
		return entry.tex
	}
	c.items[name] = &cacheEntry{tex: decoded}
	c.mu.Unlock()

	return decoded
}
