// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assets

import (
	"slices"
	"sync"
)

// Cache holds named asset caches, matched in creation order
type Cache struct {
	mu     sync.RWMutex
	order  []string
	stores map[string]map[string]*Asset
}

func NewCache() *Cache {
	return &Cache{stores: make(map[string]map[string]*Asset)}
}

// Put stores a under path in the named cache, creating the cache if needed
func (c *Cache) Put(name, path string, a *Asset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	store, ok := c.stores[name]
	if !ok {
		store = make(map[string]*Asset)
		c.stores[name] = store
		c.order = append(c.order, name)
	}
	store[path] = a
}

// Match looks path up across every cache
func (c *Cache) Match(path string) (*Asset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, name := range c.order {
		if a, ok := c.stores[name][path]; ok {
			return a, true
		}
	}
	return nil, false
}

// Names lists the caches in creation order
func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.order)
}

// Len counts the entries in the named cache
func (c *Cache) Len(name string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stores[name])
}

// Delete drops a whole cache and reports whether it existed
func (c *Cache) Delete(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.stores[name]; !ok {
		return false
	}
	delete(c.stores, name)
	c.order = slices.DeleteFunc(c.order, func(n string) bool { return n == name })
	return true
}
