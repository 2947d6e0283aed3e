// Package geocode submits one-line addresses to the US Census Bureau
// geocoder and reports the match outcome.
package geocode

import (
	"context"

	"premalloc/internal/model"
)

// Geocoder submits one address and returns its match outcome. A
// returned error means the call itself failed (network, timeout,
// malformed response) and is classified separately from a successful
// call with zero candidates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (model.GeocodeOutcome, error)
}
