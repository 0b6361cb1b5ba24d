// internal/cache/lru.go
package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// LRU is a bounded in-process completion cache. Once Size entries are held,
// adding a new key evicts the least recently used one.
type LRU struct {
	entries *lru.Cache
}

func NewLRU(size int) (*LRU, error) {
	if size <= 0 {
		return nil, fmt.Errorf("lru cache size must be positive, got %d", size)
	}
	entries, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &LRU{entries: entries}, nil
}

func (c *LRU) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.entries.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}

func (c *LRU) Set(_ context.Context, key, value string) error {
	c.entries.Add(key, value)
	return nil
}

// Remove evicts key explicitly.
func (c *LRU) Remove(key string) {
	c.entries.Remove(key)
}

func (c *LRU) Len() int {
	return c.entries.Len()
}

// Purge drops every entry.
func (c *LRU) Purge() {
	c.entries.Purge()
}
