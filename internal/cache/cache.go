// Package cache stores geocode outcomes keyed by one-line address so
// repeated addresses within a run (or across recent runs, with the
// disk layer) skip the network.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"premalloc/internal/model"
)

// Cache defines the interface for geocode outcome storage. Stores key
// by address text; hashing and serialization are internal to each
// implementation.
type Cache interface {
	Get(address string) (model.GeocodeOutcome, bool)
	Set(address string, outcome model.GeocodeOutcome, ttl time.Duration) error
	Delete(address string) error
	Clear() error
}

// Key hashes a one-line address into a namespaced cache key. The
// version segment invalidates all entries when the outcome shape
// changes.
func Key(address string) string {
	hash := sha256.Sum256([]byte(address))
	return "premalloc:v1:" + hex.EncodeToString(hash[:])
}
