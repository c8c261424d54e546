package goquery

import (
	"context"

	"github.com/fwojciec/storescope"
	"github.com/fwojciec/storescope/bloom"
)

// PolicyKind identifies a store policy document.
type PolicyKind string

// Supported policy kinds.
const (
	PolicyPrivacy PolicyKind = "privacy"
	PolicyRefund  PolicyKind = "refund"
)

// PolicyKeywords returns the href keywords that identify links to a policy.
func PolicyKeywords(kind PolicyKind) Keywords {
	switch kind {
	case PolicyPrivacy:
		return Keywords{"privacy"}
	case PolicyRefund:
		return Keywords{"refund", "return"}
	}
	return nil
}

// PolicyExtractor discovers a policy page from the home page's links and
// returns its main text.
type PolicyExtractor struct {
	Kind PolicyKind
	// Href matches links that may lead to the policy.
	Href storescope.Matcher
	// Content matches the class attribute of the element holding the text.
	Content storescope.Matcher
	// MinLength is the shortest text accepted as a policy.
	MinLength int
	// MaxLength is the length policy text is truncated to.
	MaxLength int
	// Sitemaps, when set, contributes extra candidates after the home
	// page links. Extract discovers on every call; share a SitemapLookup
	// through ExtractWith to discover once per store.
	Sitemaps storescope.SitemapService

	loader *Loader
}

// NewPolicyExtractor returns an extractor for kind with the default signals.
func NewPolicyExtractor(loader *Loader, kind PolicyKind) *PolicyExtractor {
	return &PolicyExtractor{
		Kind:      kind,
		Href:      PolicyKeywords(kind),
		Content:   MustPattern(`content|policy|page`),
		MinLength: 100,
		MaxLength: 1000,
		loader:    loader,
	}
}

// Extract returns the policy text of the first candidate page whose
// content element holds enough text, or nil when no candidate qualifies.
// Sitemap candidates from e.Sitemaps are tried only after every home page
// candidate failed.
func (e *PolicyExtractor) Extract(ctx context.Context, home *Page, baseURL string) *string {
	return e.ExtractWith(ctx, home, baseURL, NewSitemapLookup(e.Sitemaps, baseURL, PolicyURLs()))
}

// ExtractWith is Extract with sitemap candidates taken from lookup, which
// several extractors may share. A nil lookup skips sitemaps.
func (e *PolicyExtractor) ExtractWith(ctx context.Context, home *Page, baseURL string, lookup *SitemapLookup) *string {
	visited := bloom.NewFilter(256, 0.001)

	var fromHome []string
	for _, link := range home.Links() {
		if isNonHTTPLink(link.Href) || !e.Href.Match(link.Href) {
			continue
		}
		if u := ResolveURL(baseURL, link.Href); visited.Visit(u) {
			fromHome = append(fromHome, u)
		}
	}
	if text := e.first(ctx, fromHome); text != nil {
		return text
	}

	if lookup == nil || ctx.Err() != nil {
		return nil
	}
	found, err := lookup.URLs(ctx)
	if err != nil {
		e.loader.Logger().Warn("sitemap discovery failed", "url", baseURL, "policy", string(e.Kind), "err", err)
		return nil
	}
	var fromSitemap []string
	for _, u := range found {
		if e.Href.Match(u) && visited.Visit(u) {
			fromSitemap = append(fromSitemap, u)
		}
	}
	return e.first(ctx, fromSitemap)
}

// first loads candidates in order and returns the first qualifying text.
func (e *PolicyExtractor) first(ctx context.Context, candidates []string) *string {
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			return nil
		}
		page, ok := e.loader.Load(ctx, candidate)
		if !ok {
			continue
		}
		content := page.FindByClass("main, article, div", e.Content).First()
		if content.Length() == 0 {
			continue
		}
		text := VisibleText(content)
		if len([]rune(text)) > e.MinLength {
			return storescope.StringPtr(Truncate(text, e.MaxLength))
		}
	}
	return nil
}
