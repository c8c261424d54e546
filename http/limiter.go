package http

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/storescope"
	"golang.org/x/time/rate"
)

var _ storescope.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// It creates a separate rate limiter for each domain, allowing concurrent
// requests to different domains while enforcing rate limits within each domain.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewDomainLimiter creates a new DomainLimiter with the specified requests
// per second limit and burst size per domain.
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	if burst < 1 {
		burst = 1
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

var _ storescope.Fetcher = (*LimitedFetcher)(nil)

// LimitedFetcher waits on a DomainLimiter before delegating each fetch,
// keyed by the request host.
type LimitedFetcher struct {
	next    storescope.Fetcher
	limiter storescope.DomainLimiter
}

// NewLimitedFetcher wraps next with per-host throttling.
func NewLimitedFetcher(next storescope.Fetcher, limiter storescope.DomainLimiter) *LimitedFetcher {
	return &LimitedFetcher{next: next, limiter: limiter}
}

// Fetch waits for the host's rate limit and then fetches the URL.
func (f *LimitedFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", storescope.Errorf(storescope.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if err := f.limiter.Wait(ctx, u.Host); err != nil {
		return "", err
	}
	return f.next.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *LimitedFetcher) Close() error {
	return f.next.Close()
}
