package mock

import (
	"context"

	"github.com/fwojciec/storescope"
)

var _ storescope.InsightsService = (*InsightsService)(nil)

// InsightsService is a mock implementation of storescope.InsightsService.
type InsightsService struct {
	FetchInsightsFn func(ctx context.Context, websiteURL string) (*storescope.BrandInsights, error)
}

func (s *InsightsService) FetchInsights(ctx context.Context, websiteURL string) (*storescope.BrandInsights, error) {
	return s.FetchInsightsFn(ctx, websiteURL)
}

var _ storescope.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of storescope.CatalogService.
type CatalogService struct {
	FetchCatalogFn func(ctx context.Context, baseURL string) ([]storescope.Product, error)
}

func (s *CatalogService) FetchCatalog(ctx context.Context, baseURL string) ([]storescope.Product, error) {
	return s.FetchCatalogFn(ctx, baseURL)
}

var _ storescope.Enricher = (*Enricher)(nil)

// Enricher is a mock implementation of storescope.Enricher.
type Enricher struct {
	EnrichFn func(ctx context.Context, insights *storescope.BrandInsights, homeHTML string) (string, error)
}

func (e *Enricher) Enrich(ctx context.Context, insights *storescope.BrandInsights, homeHTML string) (string, error) {
	return e.EnrichFn(ctx, insights, homeHTML)
}
