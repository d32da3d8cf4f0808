package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/sophialabs/harcleaner/internal/domain/cleaning"
	"github.com/sophialabs/harcleaner/internal/domain/profile"
)

// ChainCache memoizes compiled cleaners keyed by the canonical profile JSON.
// Compiled filters are immutable, so a cached cleaner may be shared.
type ChainCache struct {
	mu       sync.Mutex
	cache    *lru.Cache
	compiler *Compiler
	hits     int
	misses   int
}

// NewChainCache creates a cache holding at most size cleaners.
func NewChainCache(compiler *Compiler, size int) *ChainCache {
	if size <= 0 {
		size = 64
	}
	return &ChainCache{cache: lru.New(size), compiler: compiler}
}

// Get returns the cleaner for p, compiling it on a miss. Compile errors are not cached.
func (c *ChainCache) Get(p *profile.Profile) (*cleaning.Cleaner, error) {
	key, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to build cache key: %w", err)
	}

	c.mu.Lock()
	if v, ok := c.cache.Get(string(key)); ok {
		c.hits++
		c.mu.Unlock()
		return v.(*cleaning.Cleaner), nil
	}
	c.misses++
	c.mu.Unlock()

	chain, err := c.compiler.Compile(p)
	if err != nil {
		return nil, err
	}
	cleaner := cleaning.NewCleaner(chain...)

	c.mu.Lock()
	c.cache.Add(string(key), cleaner)
	c.mu.Unlock()

	return cleaner, nil
}

// Stats returns the hit and miss counts.
func (c *ChainCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached cleaners.
func (c *ChainCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}
