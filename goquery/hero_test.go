package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/storescope/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeroProductExtractor_Extract(t *testing.T) {
	t.Parallel()

	const base = "https://shop.test"
	e := goquery.NewHeroProductExtractor()

	t.Run("collects titled product links", func(t *testing.T) {
		t.Parallel()

		page := parsePage(t, base, `<body>
<a href="/products/tee">Classic Tee</a>
<a href="/collections/all">Shop all</a>
<a href="/products/hat?variant=1"><img src="/hat.jpg" alt="Sun Hat"></a>
<a href="https://shop.test/products/mug/">Mug</a>
</body>`)

		got := e.Extract(page, base)
		require.Len(t, got, 3)

		assert.Equal(t, "Classic Tee", got[0].Title)
		assert.Equal(t, "tee", got[0].Handle)
		assert.Equal(t, "https://shop.test/products/tee", got[0].URL)
		assert.Nil(t, got[0].Price)
		assert.Nil(t, got[0].ID)
		assert.Empty(t, got[0].Images)

		assert.Equal(t, "Sun Hat", got[1].Title)
		assert.Equal(t, "hat", got[1].Handle)
		assert.Equal(t, "https://shop.test/products/hat?variant=1", got[1].URL)

		assert.Equal(t, "mug", got[2].Handle)
	})

	t.Run("considers at most six links", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		for i := 1; i <= 8; i++ {
			fmt.Fprintf(&b, `<a href="/products/p%d">Product %d</a>`, i, i)
		}
		got := e.Extract(parsePage(t, base, b.String()), base)
		require.Len(t, got, 6)
		assert.Equal(t, "Product 6", got[5].Title)
	})

	t.Run("untitled links count towards the limit", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString(`<a href="/products/blank"></a>`)
		for i := 1; i <= 7; i++ {
			fmt.Fprintf(&b, `<a href="/products/p%d">Product %d</a>`, i, i)
		}
		got := e.Extract(parsePage(t, base, b.String()), base)
		require.Len(t, got, 5)
		assert.Equal(t, "Product 1", got[0].Title)
		assert.Equal(t, "Product 5", got[4].Title)
	})

	t.Run("no product links", func(t *testing.T) {
		t.Parallel()

		got := e.Extract(parsePage(t, base, `<a href="/pages/about">About</a>`), base)
		assert.Empty(t, got)
	})
}
