package webfetch

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter throttles outbound requests per target host.
// It uses one token bucket per host so a slow or busy source never
// starves requests to the others. A zero rate disables throttling.
type HostLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	rate    rate.Limit
	burst   int
}

// NewHostLimiter creates a per-host rate limiter.
func NewHostLimiter(perSecond float64, burst int) *HostLimiter {
	if burst < 1 {
		burst = 1
	}

	return &HostLimiter{
		buckets: make(map[string]*rate.Limiter),
		rate:    rate.Limit(perSecond),
		burst:   burst,
	}
}

// Wait blocks until the host's bucket allows one more request.
// Returns the context error if the caller gives up first.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l.rate <= 0 {
		return nil
	}

	l.mu.Lock()
	bucket, ok := l.buckets[host]
	if !ok {
		bucket = rate.NewLimiter(l.rate, l.burst)
		l.buckets[host] = bucket
	}
	l.mu.Unlock()

	return bucket.Wait(ctx)
}

// Allow reports whether a request to the host could proceed immediately.
func (l *HostLimiter) Allow(host string) bool {
	if l.rate <= 0 {
		return true
	}

	l.mu.Lock()
	bucket, ok := l.buckets[host]
	if !ok {
		bucket = rate.NewLimiter(l.rate, l.burst)
		l.buckets[host] = bucket
	}
	l.mu.Unlock()

	return bucket.Allow()
}
