// Package assets resolves asset paths under the resources root and caches
// file contents.
package assets

import (
	"fmt"
	"os"
	"sync"
)

// Manager reads asset files through an in-memory cache.
type Manager struct {
	resolver Resolver
	cache    *Cache
}

// NewManager creates a new asset manager rooted at root.
func NewManager(root string) *Manager {
	return &Manager{
		resolver: NewResolver(root),
		cache:    NewCache(),
	}
}

// Resolver returns the path resolver used by the manager.
func (m *Manager) Resolver() Resolver {
	return m.resolver
}

// Load returns the contents of an already resolved path.
func (m *Manager) Load(path string) ([]byte, error) {
	key := Key(path)
	if data, ok := m.cache.Get(key); ok {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", path, err)
	}
	m.cache.Set(key, data)
	return data, nil
}

// Invalidate drops the cached contents of path so the next Load rereads it.
func (m *Manager) Invalidate(path string) {
	m.cache.Delete(Key(path))
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops all cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
