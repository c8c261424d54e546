package storescope

import "context"

// Fetcher retrieves raw page content from URLs.
type Fetcher interface {
	// Fetch performs a single GET for the URL and returns the body.
	// Non-2xx responses are reported as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
