package geocode

import (
	"context"
	"time"

	"premalloc/internal/cache"
	"premalloc/internal/model"
)

// Cached wraps a Geocoder with an outcome cache. Only successful
// outcomes are cached; failures are retried on the next occurrence of
// the address.
type Cached struct {
	inner Geocoder
	store cache.Cache
	ttl   time.Duration
}

// NewCached creates a caching wrapper around the given geocoder.
func NewCached(inner Geocoder, store cache.Cache, ttl time.Duration) *Cached {
	return &Cached{inner: inner, store: store, ttl: ttl}
}

// Geocode returns a cached outcome when available, calling through
// otherwise.
func (c *Cached) Geocode(ctx context.Context, address string) (model.GeocodeOutcome, error) {
	if outcome, found := c.store.Get(address); found {
		return outcome, nil
	}

	outcome, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return outcome, err
	}

	_ = c.store.Set(address, outcome, c.ttl)
	return outcome, nil
}
