// Package ratelimit spaces out sequential provider calls by a fixed interval.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer lets the first call through immediately and every following call
// at least Interval after the previous one.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a Pacer for the interval. A zero or negative interval
// disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call is allowed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
