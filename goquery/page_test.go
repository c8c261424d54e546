package goquery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/storescope"
	"github.com/fwojciec/storescope/goquery"
	"github.com/fwojciec/storescope/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parsePage parses markup or fails the test.
func parsePage(t *testing.T, pageURL, html string) *goquery.Page {
	t.Helper()
	page, err := goquery.Parse(pageURL, html)
	require.NoError(t, err)
	return page
}

// siteFetcher serves pages by exact URL and fails for anything else.
func siteFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			if html, ok := pages[url]; ok {
				return html, nil
			}
			return "", storescope.Errorf(storescope.ENOTFOUND, "HTTP 404 for %s", url)
		},
	}
}

func TestPage_Title(t *testing.T) {
	t.Parallel()

	page := parsePage(t, "https://shop.test", `<html><head><title>  Acme Store  </title></head></html>`)
	assert.Equal(t, "Acme Store", page.Title())

	empty := parsePage(t, "https://shop.test", `<html><body></body></html>`)
	assert.Equal(t, "", empty.Title())
}

func TestPage_Meta(t *testing.T) {
	t.Parallel()

	page := parsePage(t, "https://shop.test", `<html><head>
<meta name="description" content=" Soft goods. ">
<meta property="og:site_name" content="Acme">
<meta name="keywords" content="">
</head></html>`)

	desc, ok := page.MetaName("description")
	assert.True(t, ok)
	assert.Equal(t, "Soft goods.", desc)

	site, ok := page.MetaProperty("og:site_name")
	assert.True(t, ok)
	assert.Equal(t, "Acme", site)

	_, ok = page.MetaName("keywords")
	assert.False(t, ok, "empty content is treated as missing")

	_, ok = page.MetaProperty("og:description")
	assert.False(t, ok)
}

func TestPage_Links(t *testing.T) {
	t.Parallel()

	page := parsePage(t, "https://shop.test", `<html><body>
<a href="">Empty</a>
<a href=" /pages/about "> About
  us </a>
<a>No href</a>
</body></html>`)

	links := page.Links()
	require.Len(t, links, 1)
	assert.Equal(t, "/pages/about", links[0].Href)
	assert.Equal(t, "About us", links[0].Text)
}

func TestPage_Text(t *testing.T) {
	t.Parallel()

	page := parsePage(t, "https://shop.test", `<html><head><title>Ignored</title></head><body>
<h1>Welcome</h1>Shop<p>now</p>
<script>var x = 1;</script><style>.a{}</style><noscript>Enable JS</noscript>
</body></html>`)

	assert.Equal(t, "Welcome Shop now", page.Text())
}

func TestVisibleText(t *testing.T) {
	t.Parallel()

	t.Run("separates adjacent blocks", func(t *testing.T) {
		t.Parallel()

		page := parsePage(t, "https://shop.test", `<div id="x"><p>Hello</p><p>World</p></div>`)
		assert.Equal(t, "Hello World", goquery.VisibleText(page.Document().Find("#x")))
	})

	t.Run("keeps inline elements joined", func(t *testing.T) {
		t.Parallel()

		page := parsePage(t, "https://shop.test", `<p id="x">Soft <b>cotton</b>tee</p>`)
		assert.Equal(t, "Soft cottontee", goquery.VisibleText(page.Document().Find("#x")))
	})

	t.Run("empty selection", func(t *testing.T) {
		t.Parallel()

		page := parsePage(t, "https://shop.test", `<p>text</p>`)
		assert.Equal(t, "", goquery.VisibleText(page.Document().Find("#missing")))
	})
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Soft cotton tee", goquery.PlainText("<p>Soft <b>cotton</b> tee</p>"))
	assert.Equal(t, "One Two", goquery.PlainText("<p>One</p><p>Two</p>"))
	assert.Equal(t, "", goquery.PlainText("  "))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", goquery.Truncate("abc", 3))
	assert.Equal(t, "hél...", goquery.Truncate("héllo", 3))
	assert.Equal(t, "", goquery.Truncate("", 5))
}

func TestResolveURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base, href, want string
	}{
		{"https://shop.test", "/pages/about", "https://shop.test/pages/about"},
		{"https://shop.test/collections/", "tees", "https://shop.test/collections/tees"},
		{"https://shop.test", "https://cdn.test/a.jpg", "https://cdn.test/a.jpg"},
		{"https://shop.test", "//cdn.test/a.jpg", "https://cdn.test/a.jpg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, goquery.ResolveURL(tt.base, tt.href), "ResolveURL(%q, %q)", tt.base, tt.href)
	}

	page := parsePage(t, "https://shop.test/pages/", "<p></p>")
	assert.Equal(t, "https://shop.test/pages/faq", page.Resolve("faq"))
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("parses fetched page", func(t *testing.T) {
		t.Parallel()

		loader := goquery.NewLoader(siteFetcher(map[string]string{
			"https://shop.test": "<title>Acme</title>",
		}), nil)

		page, ok := loader.Load(context.Background(), "https://shop.test")
		require.True(t, ok)
		assert.Equal(t, "https://shop.test", page.URL)
		assert.Equal(t, "Acme", page.Title())
		assert.Equal(t, "<title>Acme</title>", page.HTML())
	})

	t.Run("fetch failure is absence", func(t *testing.T) {
		t.Parallel()

		loader := goquery.NewLoader(&mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", errors.New("connection refused")
			},
		}, nil)

		page, ok := loader.Load(context.Background(), "https://shop.test")
		assert.False(t, ok)
		assert.Nil(t, page)
	})

	t.Run("nil logger is replaced", func(t *testing.T) {
		t.Parallel()

		loader := goquery.NewLoader(siteFetcher(nil), nil)
		assert.NotNil(t, loader.Logger())
	})
}
