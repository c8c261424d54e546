package http

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/storescope"
)

// Ensure SitemapService implements storescope.SitemapService.
var _ storescope.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps.
// Storefront sitemaps are usually an index pointing at per-type child
// sitemaps (products, collections, pages, blogs); a child filter restricts
// which of those are fetched.
type SitemapService struct {
	fetcher  storescope.Fetcher
	children *storescope.URLFilter
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithChildFilter restricts which child sitemaps of a sitemap index are
// fetched. A nil filter fetches all of them.
func WithChildFilter(filter *storescope.URLFilter) SitemapOption {
	return func(s *SitemapService) {
		s.children = filter
	}
}

// NewSitemapService creates a new SitemapService on top of fetcher.
func NewSitemapService(fetcher storescope.Fetcher, opts ...SitemapOption) *SitemapService {
	s := &SitemapService{fetcher: fetcher}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiscoverURLs finds all URLs from a site's sitemap.
// Returns an empty slice (not nil) if no sitemaps are found.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *storescope.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, storescope.Errorf(storescope.EINVALID, "invalid base URL: %v", err)
	}

	// Sitemaps live at the root of the domain.
	root := *base
	root.Path = ""
	root.RawQuery = ""
	root.Fragment = ""

	sitemapURLs := s.findSitemapURLs(ctx, &root)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(sitemapURLs) == 0 {
		return []string{}, nil
	}

	allURLs := []string{}
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)

	for _, sitemapURL := range sitemapURLs {
		urls, err := s.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if seenURLs[u] || !filter.Match(u) {
				continue
			}
			seenURLs[u] = true
			allURLs = append(allURLs, u)
		}
	}

	return allURLs, nil
}

// findSitemapURLs discovers sitemap URLs from robots.txt or falls back to /sitemap.xml.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) []string {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := s.parseSitemapsFromRobots(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps
	}

	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	return []string{sitemapURL.String()}
}

// parseSitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) parseSitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetcher.Fetch(ctx, robotsURL)
	if err != nil {
		return nil, err
	}

	var sitemaps []string
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			sitemapURL := strings.TrimSpace(line[8:]) // len("sitemap:") == 8
			if sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	return sitemaps, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
// A sitemap that cannot be fetched contributes no URLs.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		return s.processSitemapIndex(ctx, root, seen)
	}

	return parseURLSet(root), nil
}

// processSitemapIndex processes a <sitemapindex> element recursively.
func (s *SitemapService) processSitemapIndex(ctx context.Context, root *etree.Element, seen map[string]bool) ([]string, error) {
	var allURLs []string

	for _, sitemap := range root.SelectElements("sitemap") {
		loc := sitemap.SelectElement("loc")
		if loc == nil {
			continue
		}
		sitemapURL := strings.TrimSpace(loc.Text())
		if sitemapURL == "" || !s.children.Match(sitemapURL) {
			continue
		}

		urls, err := s.processSitemap(ctx, sitemapURL, seen)
		if err != nil {
			return nil, err
		}
		allURLs = append(allURLs, urls...)
	}

	return allURLs, nil
}

// parseURLSet extracts URLs from a <urlset> element.
func parseURLSet(root *etree.Element) []string {
	var urls []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		u := strings.TrimSpace(loc.Text())
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
