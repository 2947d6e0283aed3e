package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"premalloc/internal/model"
)

// MemoryCache keeps geocode outcomes in process memory. Outcomes are
// stored as values, so a hit costs a map lookup and nothing else.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache with the given default TTL and
// cleanup interval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the cached outcome for an address.
func (c *MemoryCache) Get(address string) (model.GeocodeOutcome, bool) {
	if val, found := c.cache.Get(Key(address)); found {
		if outcome, ok := val.(model.GeocodeOutcome); ok {
			return outcome, true
		}
	}
	return model.GeocodeOutcome{}, false
}

// Set stores an outcome with the given TTL. A zero TTL uses the cache
// default.
func (c *MemoryCache) Set(address string, outcome model.GeocodeOutcome, ttl time.Duration) error {
	c.cache.Set(Key(address), outcome, ttl)
	return nil
}

// Delete removes the outcome for an address.
func (c *MemoryCache) Delete(address string) error {
	c.cache.Delete(Key(address))
	return nil
}

// Clear removes all cached outcomes.
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
