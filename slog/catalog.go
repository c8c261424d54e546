package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/storescope"
)

// Ensure LoggingCatalogService implements storescope.CatalogService.
var _ storescope.CatalogService = (*LoggingCatalogService)(nil)

// LoggingCatalogService wraps a CatalogService with debug logging.
type LoggingCatalogService struct {
	next   storescope.CatalogService
	logger *slog.Logger
}

// NewLoggingCatalogService creates a new LoggingCatalogService.
func NewLoggingCatalogService(next storescope.CatalogService, logger *slog.Logger) *LoggingCatalogService {
	return &LoggingCatalogService{next: next, logger: logger}
}

// FetchCatalog delegates to the wrapped service and logs the product count.
func (s *LoggingCatalogService) FetchCatalog(ctx context.Context, baseURL string) (products []storescope.Product, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("product catalog",
			"url", baseURL,
			"count", len(products),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchCatalog(ctx, baseURL)
}
