package source

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter implements a token bucket for outbound provider calls.
// Several digest sections query the same provider host back to back; the
// limiter keeps that burst polite without any run-level scheduling.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a RateLimiter with the specified sustained rate and
// burst capacity.
//
// Example:
//
//	limiter := NewRateLimiter(2.0, 2) // 2 req/s with burst of 2
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until a token is available or the context is canceled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
