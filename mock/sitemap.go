package mock

import (
	"context"

	"github.com/fwojciec/storescope"
)

var _ storescope.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of storescope.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *storescope.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *storescope.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
