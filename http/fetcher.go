// Package http provides net/http implementations of storescope.Fetcher
// and storescope.SitemapService.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/storescope"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 << 20

// DefaultHeaders is a browser-like header profile. Storefronts commonly
// reject requests carrying Go's default user agent.
var DefaultHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Referer":                   "https://www.google.com/",
	"DNT":                       "1",
	"Upgrade-Insecure-Requests": "1",
}

// Ensure Fetcher implements storescope.Fetcher at compile time.
var _ storescope.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page content using plain HTTP GET requests.
// A single Fetcher is safe for concurrent use and reuses connections
// across requests; it never caches content.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	headers map[string]string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient sets the underlying HTTP client. The fetcher works on a
// shallow copy carrying the fetcher timeout; c itself is not modified.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithHeaders replaces the default header profile.
func WithHeaders(h map[string]string) Option {
	return func(f *Fetcher) {
		f.headers = h
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		headers: DefaultHeaders,
	}
	for _, opt := range opts {
		opt(f)
	}

	client := &http.Client{}
	if f.client != nil {
		copied := *f.client
		client = &copied
	}
	client.Timeout = f.timeout
	f.client = client

	return f
}

// Fetch retrieves the body of the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", storescope.Errorf(storescope.EINVALID, "invalid URL %q: %v", url, err)
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
