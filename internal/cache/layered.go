package cache

import (
	"time"

	"premalloc/internal/model"
)

// LayeredCache checks memory before disk and promotes disk hits, so an
// address geocoded in an earlier run pays the disk read once and stays
// in memory for the rest of the current run.
type LayeredCache struct {
	memory *MemoryCache
	disk   *DiskCache
}

// NewLayeredCache creates a memory cache over a disk cache rooted at
// diskDir.
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Get returns the cached outcome for an address, promoting disk hits
// into the memory layer.
func (c *LayeredCache) Get(address string) (model.GeocodeOutcome, bool) {
	if outcome, found := c.memory.Get(address); found {
		return outcome, true
	}

	if outcome, found := c.disk.Get(address); found {
		_ = c.memory.Set(address, outcome, 0)
		return outcome, true
	}

	return model.GeocodeOutcome{}, false
}

// Set stores an outcome in both layers.
func (c *LayeredCache) Set(address string, outcome model.GeocodeOutcome, ttl time.Duration) error {
	if err := c.memory.Set(address, outcome, ttl); err != nil {
		return err
	}
	return c.disk.Set(address, outcome, ttl)
}

// Delete removes the outcome for an address from both layers.
func (c *LayeredCache) Delete(address string) error {
	_ = c.memory.Delete(address)
	_ = c.disk.Delete(address)
	return nil
}

// Clear removes all outcomes from both layers.
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
