package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/storescope"
)

// Ensure LoggingInsightsService implements storescope.InsightsService.
var _ storescope.InsightsService = (*LoggingInsightsService)(nil)

// LoggingInsightsService logs every extraction request at info level.
type LoggingInsightsService struct {
	next   storescope.InsightsService
	logger *slog.Logger
}

// NewLoggingInsightsService creates a new LoggingInsightsService.
func NewLoggingInsightsService(next storescope.InsightsService, logger *slog.Logger) *LoggingInsightsService {
	return &LoggingInsightsService{next: next, logger: logger}
}

// FetchInsights delegates to the wrapped service and logs a summary of
// the result.
func (s *LoggingInsightsService) FetchInsights(ctx context.Context, websiteURL string) (insights *storescope.BrandInsights, err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.Warn("insights extraction failed",
				"url", websiteURL,
				"code", storescope.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		s.logger.Info("insights extracted",
			"url", websiteURL,
			"brand", insights.BrandName,
			"products", insights.TotalProducts,
			"faqs", len(insights.FAQs),
			"links", len(insights.ImportantLinks),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.FetchInsights(ctx, websiteURL)
}
