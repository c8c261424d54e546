// Package slog provides logging decorators for storescope services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/storescope"
)

// Ensure LoggingFetcher implements storescope.Fetcher.
var _ storescope.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging of every request.
type LoggingFetcher struct {
	next   storescope.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next storescope.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if err != nil {
			f.logger.Debug("fetch", append(attrs, "err", err)...)
			return
		}
		f.logger.Debug("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
