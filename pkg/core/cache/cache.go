// Package cache provides the hot tier: a short-TTL key-value cache of fully
// assembled responses. The interface is deliberately Redis-shaped so a
// networked cache can be swapped in; the in-memory implementation covers
// single-process deployments.
package cache

import (
	"fmt"
	"sync"
	"time"

	"finagentex/pkg/models"
)

// TTL for assembled fundamentals responses. Filings arrive quarterly, so a
// week-old assembled response is still current.
const TTLFundamentals = 7 * 24 * time.Hour

// KVCache is the hot-tier collaborator.
type KVCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, val []byte, ttl time.Duration)
}

// Key builds the hot-cache key for a (ticker, granularity) pair.
func Key(ticker string, g models.Granularity) string {
	return fmt.Sprintf("fundamentals:%s:%s", ticker, g)
}

type entry struct {
	val       []byte
	expiresAt time.Time
}

// MemoryCache is a mutex-guarded map with lazy expiry plus a background
// sweep.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryCache creates a cache and starts its sweep goroutine.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]entry),
		stop:    make(chan struct{}),
	}
	go c.sweep(10 * time.Minute)
	return c
}

// Get returns the value if present and unexpired.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.val, true
}

// Set stores val under key for ttl.
func (c *MemoryCache) Set(key string, val []byte, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{val: val, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Close stops the sweep goroutine.
func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *MemoryCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for k, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
