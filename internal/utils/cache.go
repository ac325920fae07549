package utils

import (
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem wraps cached data with its expiry.
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Cache is a small local LRU with per-entry TTL.
type Cache struct {
	lruCache *lru.Cache[string, CacheItem]
}

func NewCache(size int) *Cache {
	l, err := lru.New[string, CacheItem](size)
	if err != nil {
		log.Fatalf("Failed to create LRU cache: %v", err)
	}
	return &Cache{lruCache: l}
}

func (c *Cache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get returns nil when the key is absent or expired.
func (c *Cache) Get(key string) interface{} {
	item, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}
	if time.Now().After(item.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}
	return item.Data
}

func (c *Cache) Remove(key string) {
	c.lruCache.Remove(key)
}
