package cache

import (
	"context"
	"sync"
)

// Cache is a concurrency-safe in-process map.
type Cache[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

func NewCache[K comparable, V any](size int) *Cache[K, V] {
	return &Cache[K, V]{
		m: make(map[K]V, size),
	}
}

func (c *Cache[K, V]) Get(_ context.Context, k K) (V, bool) {
	c.mu.RLock()
	v, ok := c.m[k]
	c.mu.RUnlock()
	return v, ok
}

func (c *Cache[K, V]) Set(_ context.Context, k K, v V) {
	c.mu.Lock()
	c.m[k] = v
	c.mu.Unlock()
}

// GetOrSet returns the value stored under k, storing newValue() first if k is
// absent. Concurrent callers for the same key all observe one value.
func (c *Cache[K, V]) GetOrSet(_ context.Context, k K, newValue func() V) V {
	c.mu.RLock()
	v, ok := c.m[k]
	c.mu.RUnlock()
	if ok {
		return v
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.m[k]; ok {
		return v
	}
	v = newValue()
	c.m[k] = v
	return v
}

// DeleteFunc removes every entry for which del returns true and reports how
// many were removed. del runs under the write lock.
func (c *Cache[K, V]) DeleteFunc(_ context.Context, del func(K, V) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, v := range c.m {
		if del(k, v) {
			delete(c.m, k)
			removed++
		}
	}
	return removed
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
