package goquery

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/fwojciec/storescope"
)

// PolicyChildSitemaps selects the children of a sitemap index that can list
// policy pages. Product, collection and blog sitemaps are skipped.
func PolicyChildSitemaps() *storescope.URLFilter {
	return &storescope.URLFilter{
		Include: []*regexp.Regexp{regexp.MustCompile(`(?i)(pages|polic)[^/]*\.xml`)},
	}
}

// PolicyURLs keeps sitemap entries whose URL names any policy kind.
func PolicyURLs() *storescope.URLFilter {
	var words []string
	for _, kind := range []PolicyKind{PolicyPrivacy, PolicyRefund} {
		for _, w := range PolicyKeywords(kind) {
			words = append(words, regexp.QuoteMeta(w))
		}
	}
	return &storescope.URLFilter{
		Include: []*regexp.Regexp{regexp.MustCompile(`(?i)` + strings.Join(words, "|"))},
	}
}

// SitemapLookup runs sitemap discovery for one store at most once and
// shares the result between its callers. It is safe for concurrent use.
// A nil *SitemapLookup discovers nothing.
type SitemapLookup struct {
	sitemaps storescope.SitemapService
	baseURL  string
	filter   *storescope.URLFilter

	once sync.Once
	urls []string
	err  error
}

// NewSitemapLookup returns a lookup for baseURL, or nil when sitemaps is nil.
func NewSitemapLookup(sitemaps storescope.SitemapService, baseURL string, filter *storescope.URLFilter) *SitemapLookup {
	if sitemaps == nil {
		return nil
	}
	return &SitemapLookup{sitemaps: sitemaps, baseURL: baseURL, filter: filter}
}

// URLs discovers on first call; later calls return the same result.
func (l *SitemapLookup) URLs(ctx context.Context) ([]string, error) {
	if l == nil {
		return nil, nil
	}
	l.once.Do(func() {
		l.urls, l.err = l.sitemaps.DiscoverURLs(ctx, l.baseURL, l.filter)
	})
	return l.urls, l.err
}
