// Package worker paces calls to the upstream geocoding service.
package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle paces sequential geocoder calls. A token bucket bounds the
// sustained request rate; a fixed pause separates consecutive calls.
// The pause magnitude is a tunable courtesy to the upstream service,
// not a correctness invariant.
type Throttle struct {
	limiter *rate.Limiter
	delay   time.Duration
}

// NewThrottle creates a throttle with the given sustained rate, burst
// and inter-call delay.
func NewThrottle(requestsPerSecond float64, burst int, delay time.Duration) *Throttle {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &Throttle{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		delay:   delay,
	}
}

// Wait blocks until the next upstream call may proceed, honoring both
// the token bucket and the fixed delay. Returns early when the context
// is cancelled.
func (t *Throttle) Wait(ctx context.Context) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	if t.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(t.delay):
		}
	}
	return nil
}

// Allow reports whether a call could proceed right now without waiting.
func (t *Throttle) Allow() bool {
	return t.limiter.Allow()
}
