package goquery_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/storescope"
	"github.com/fwojciec/storescope/goquery"
	"github.com/fwojciec/storescope/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://shop.test"

var privacyText = strings.TrimSpace(strings.Repeat("We respect your privacy. ", 6))

func TestPolicyExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("follows matching home link", func(t *testing.T) {
		t.Parallel()

		loader := goquery.NewLoader(siteFetcher(map[string]string{
			base + "/policies/privacy-policy": `<main class="main-content"><p>` + privacyText + `</p></main>`,
		}), nil)
		home := parsePage(t, base, `<footer><a href="/policies/privacy-policy">Privacy</a></footer>`)

		got := goquery.NewPolicyExtractor(loader, goquery.PolicyPrivacy).Extract(context.Background(), home, base)
		require.NotNil(t, got)
		assert.Equal(t, privacyText, *got)
	})

	t.Run("skips candidates with too little text", func(t *testing.T) {
		t.Parallel()

		loader := goquery.NewLoader(siteFetcher(map[string]string{
			base + "/pages/privacy":           `<div class="page">Short policy.</div>`,
			base + "/policies/privacy-policy": `<article class="policy">` + privacyText + `</article>`,
		}), nil)
		home := parsePage(t, base, `<a href="/pages/privacy">Privacy</a><a href="/policies/privacy-policy">Privacy policy</a>`)

		got := goquery.NewPolicyExtractor(loader, goquery.PolicyPrivacy).Extract(context.Background(), home, base)
		require.NotNil(t, got)
		assert.Equal(t, privacyText, *got)
	})

	t.Run("refund policy matches return links", func(t *testing.T) {
		t.Parallel()

		refund := strings.TrimSpace(strings.Repeat("Returns accepted within 30 days. ", 5))
		loader := goquery.NewLoader(siteFetcher(map[string]string{
			base + "/pages/returns": `<div class="page-content">` + refund + `</div>`,
		}), nil)
		home := parsePage(t, base, `<a href="/policies/privacy-policy">Privacy</a><a href="/pages/returns">Returns</a>`)

		got := goquery.NewPolicyExtractor(loader, goquery.PolicyRefund).Extract(context.Background(), home, base)
		require.NotNil(t, got)
		assert.Equal(t, refund, *got)
	})

	t.Run("truncates long policies", func(t *testing.T) {
		t.Parallel()

		loader := goquery.NewLoader(siteFetcher(map[string]string{
			base + "/policies/privacy-policy": `<main class="content">` + strings.Repeat("a", 1500) + `</main>`,
		}), nil)
		home := parsePage(t, base, `<a href="/policies/privacy-policy">Privacy</a>`)

		got := goquery.NewPolicyExtractor(loader, goquery.PolicyPrivacy).Extract(context.Background(), home, base)
		require.NotNil(t, got)
		assert.Len(t, *got, 1003)
		assert.True(t, strings.HasSuffix(*got, "..."))
	})

	t.Run("unreachable candidate yields nil", func(t *testing.T) {
		t.Parallel()

		loader := goquery.NewLoader(siteFetcher(nil), nil)
		home := parsePage(t, base, `<a href="/policies/privacy-policy">Privacy</a>`)

		assert.Nil(t, goquery.NewPolicyExtractor(loader, goquery.PolicyPrivacy).Extract(context.Background(), home, base))
	})

	t.Run("no candidates yields nil", func(t *testing.T) {
		t.Parallel()

		loader := goquery.NewLoader(siteFetcher(nil), nil)
		home := parsePage(t, base, `<a href="mailto:privacy@shop.test">Privacy</a><a href="/pages/about">About</a>`)

		assert.Nil(t, goquery.NewPolicyExtractor(loader, goquery.PolicyPrivacy).Extract(context.Background(), home, base))
	})

	t.Run("fetches each candidate once", func(t *testing.T) {
		t.Parallel()

		var fetches int
		loader := goquery.NewLoader(&mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				fetches++
				return `<div class="page">too short</div>`, nil
			},
		}, nil)
		home := parsePage(t, base, `<a href="/policies/privacy-policy">Privacy</a><a href="https://shop.test/policies/privacy-policy">Privacy policy</a>`)

		assert.Nil(t, goquery.NewPolicyExtractor(loader, goquery.PolicyPrivacy).Extract(context.Background(), home, base))
		assert.Equal(t, 1, fetches)
	})

	t.Run("falls back to sitemap candidates", func(t *testing.T) {
		t.Parallel()

		loader := goquery.NewLoader(siteFetcher(map[string]string{
			base + "/policies/privacy-policy": `<main class="policy">` + privacyText + `</main>`,
		}), nil)
		home := parsePage(t, base, `<a href="/pages/about">About</a>`)

		e := goquery.NewPolicyExtractor(loader, goquery.PolicyPrivacy)
		e.Sitemaps = &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, baseURL string, _ *storescope.URLFilter) ([]string, error) {
				assert.Equal(t, base, baseURL)
				return []string{base + "/products/tee", base + "/policies/privacy-policy"}, nil
			},
		}

		got := e.Extract(context.Background(), home, base)
		require.NotNil(t, got)
		assert.Equal(t, privacyText, *got)
	})

	t.Run("sitemap failure keeps home candidates", func(t *testing.T) {
		t.Parallel()

		loader := goquery.NewLoader(siteFetcher(nil), nil)
		home := parsePage(t, base, `<a href="/pages/about">About</a>`)

		e := goquery.NewPolicyExtractor(loader, goquery.PolicyPrivacy)
		e.Sitemaps = &mock.SitemapService{
			DiscoverURLsFn: func(context.Context, string, *storescope.URLFilter) ([]string, error) {
				return nil, storescope.Errorf(storescope.EUNREACHABLE, "no sitemap")
			},
		}

		assert.Nil(t, e.Extract(context.Background(), home, base))
	})

	t.Run("home candidate skips sitemap discovery", func(t *testing.T) {
		t.Parallel()

		loader := goquery.NewLoader(siteFetcher(map[string]string{
			base + "/policies/privacy-policy": `<main class="policy">` + privacyText + `</main>`,
		}), nil)
		home := parsePage(t, base, `<a href="/policies/privacy-policy">Privacy</a>`)

		e := goquery.NewPolicyExtractor(loader, goquery.PolicyPrivacy)
		e.Sitemaps = &mock.SitemapService{
			DiscoverURLsFn: func(context.Context, string, *storescope.URLFilter) ([]string, error) {
				t.Error("sitemap discovered although the home page link qualified")
				return nil, nil
			},
		}

		got := e.Extract(context.Background(), home, base)
		require.NotNil(t, got)
		assert.Equal(t, privacyText, *got)
	})

	t.Run("shared lookup discovers once with a policy filter", func(t *testing.T) {
		t.Parallel()

		refundText := strings.TrimSpace(strings.Repeat("Refunds are issued within 5 days. ", 5))
		loader := goquery.NewLoader(siteFetcher(map[string]string{
			base + "/policies/privacy-policy": `<main class="policy">` + privacyText + `</main>`,
			base + "/policies/refund-policy":  `<main class="policy">` + refundText + `</main>`,
		}), nil)
		home := parsePage(t, base, `<a href="/pages/about">About</a>`)

		calls := 0
		var gotFilter *storescope.URLFilter
		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, filter *storescope.URLFilter) ([]string, error) {
				calls++
				gotFilter = filter
				return []string{base + "/policies/privacy-policy", base + "/policies/refund-policy"}, nil
			},
		}
		lookup := goquery.NewSitemapLookup(sitemaps, base, goquery.PolicyURLs())

		privacy := goquery.NewPolicyExtractor(loader, goquery.PolicyPrivacy).ExtractWith(context.Background(), home, base, lookup)
		refund := goquery.NewPolicyExtractor(loader, goquery.PolicyRefund).ExtractWith(context.Background(), home, base, lookup)

		require.NotNil(t, privacy)
		assert.Equal(t, privacyText, *privacy)
		require.NotNil(t, refund)
		assert.Equal(t, refundText, *refund)
		assert.Equal(t, 1, calls)
		require.NotNil(t, gotFilter)
		assert.True(t, gotFilter.Match(base+"/policies/refund-policy"))
		assert.False(t, gotFilter.Match(base+"/products/tee"))
	})

	t.Run("nil lookup skips sitemaps", func(t *testing.T) {
		t.Parallel()

		loader := goquery.NewLoader(siteFetcher(nil), nil)
		home := parsePage(t, base, `<a href="/pages/about">About</a>`)

		assert.Nil(t, goquery.NewPolicyExtractor(loader, goquery.PolicyPrivacy).ExtractWith(context.Background(), home, base, nil))
	})
}
