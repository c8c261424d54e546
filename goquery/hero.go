package goquery

import (
	"net/url"
	"strings"

	"github.com/fwojciec/storescope"
)

// HeroProductExtractor scrapes featured products linked from the home page.
type HeroProductExtractor struct {
	// Href matches product link targets.
	Href storescope.Matcher
	// Limit is how many matching links are considered.
	Limit int
}

// NewHeroProductExtractor returns an extractor with the default signals.
func NewHeroProductExtractor() *HeroProductExtractor {
	return &HeroProductExtractor{
		Href:  Keywords{"/products/"},
		Limit: 6,
	}
}

// Extract returns the featured products in document order. Links without
// a usable title are skipped but still count towards Limit.
func (e *HeroProductExtractor) Extract(page *Page, baseURL string) []storescope.Product {
	var products []storescope.Product
	considered := 0
	for _, link := range page.Links() {
		if considered >= e.Limit {
			break
		}
		if !e.Href.Match(link.Href) {
			continue
		}
		considered++

		title := link.Text
		if title == "" {
			title = strings.TrimSpace(link.Sel.Find("img").First().AttrOr("alt", ""))
		}
		if title == "" {
			continue
		}

		products = append(products, storescope.Product{
			Title:  title,
			Handle: productHandle(link.Href),
			Images: []string{},
			Tags:   []string{},
			URL:    ResolveURL(baseURL, link.Href),
		})
	}
	return products
}

// productHandle returns the last path segment of href, ignoring any query
// string, fragment or trailing slash.
func productHandle(href string) string {
	path := href
	if u, err := url.Parse(href); err == nil {
		path = u.Path
	}
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
