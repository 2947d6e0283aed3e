package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"premalloc/internal/model"
)

// DiskCache persists geocode outcomes between runs, one JSON file per
// address under the cache directory. Expiry travels inside each entry
// so a fresh process honors the TTL of entries written by an earlier
// one.
type DiskCache struct {
	dir string
	ttl time.Duration
}

// NewDiskCache creates a disk cache rooted at dir with the given
// default TTL.
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{
		dir: dir,
		ttl: ttl,
	}
}

type diskEntry struct {
	Outcome   model.GeocodeOutcome `json:"outcome"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// Get returns the persisted outcome for an address. Expired and
// unreadable entries are evicted and report a miss.
func (c *DiskCache) Get(address string) (model.GeocodeOutcome, bool) {
	path := c.path(address)

	data, err := os.ReadFile(path)
	if err != nil {
		return model.GeocodeOutcome{}, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return model.GeocodeOutcome{}, false
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return model.GeocodeOutcome{}, false
	}

	return entry.Outcome, true
}

// Set persists an outcome. A zero TTL uses the cache default.
func (c *DiskCache) Set(address string, outcome model.GeocodeOutcome, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	entry := diskEntry{
		Outcome:   outcome,
		ExpiresAt: time.Now().Add(ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(c.path(address), data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Delete removes the outcome for an address.
func (c *DiskCache) Delete(address string) error {
	return os.Remove(c.path(address))
}

// Clear removes the whole cache directory.
func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *DiskCache) path(address string) string {
	return filepath.Join(c.dir, Key(address)+".json")
}
