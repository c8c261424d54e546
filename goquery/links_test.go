package goquery_test

import (
	"testing"

	"github.com/fwojciec/storescope/goquery"
	"github.com/stretchr/testify/assert"
)

func TestLinksExtractor_Extract(t *testing.T) {
	t.Parallel()

	const base = "https://shop.test"
	e := goquery.NewLinksExtractor()

	t.Run("categorises navigation", func(t *testing.T) {
		t.Parallel()

		page := parsePage(t, base, `<body>
<a href="mailto:hi@shop.test">Contact us</a>
<a href="/pages/contact">Contact</a>
<a href="/blogs/news">Journal</a>
<a href="/pages/about-us">Our Story</a>
<a href="/pages/shipping">Shipping</a>
<a href="/pages/contact-2">Contact again</a>
<a href="/help">Track Order</a>
<a href="https://help.shop.test/support">Help center</a>
</body>`)

		got := e.Extract(page, base)
		assert.Equal(t, map[string]string{
			"Contact Us":       "https://shop.test/pages/contact",
			"Blog":             "https://shop.test/blogs/news",
			"About Us":         "https://shop.test/pages/about-us",
			"Shipping":         "https://shop.test/pages/shipping",
			"Order Tracking":   "https://shop.test/help",
			"Customer Service": "https://help.shop.test/support",
		}, got)
	})

	t.Run("anchor counts for its first category only", func(t *testing.T) {
		t.Parallel()

		page := parsePage(t, base, `<a href="/pages/track-order">Contact</a>`)
		assert.Equal(t, map[string]string{
			"Order Tracking": "https://shop.test/pages/track-order",
		}, e.Extract(page, base))
	})

	t.Run("no matches", func(t *testing.T) {
		t.Parallel()

		got := e.Extract(parsePage(t, base, `<a href="/collections/all">Shop</a>`), base)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
