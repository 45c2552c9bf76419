package cache

import "sync"

// InMemoryCache backs local runs and tests when no REDIS_ADDR is set.
type InMemoryCache struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{items: make(map[string]string)}
}

func (c *InMemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *InMemoryCache) Set(key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

var _ CacheRepository = (*InMemoryCache)(nil)
