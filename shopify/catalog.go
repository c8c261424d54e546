// Package shopify reads the structured product feed storefronts publish
// at /products.json.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fwojciec/storescope"
	"github.com/fwojciec/storescope/goquery"
)

// FeedPath is the product feed location relative to the store root.
const FeedPath = "/products.json"

// Ensure CatalogService implements storescope.CatalogService at compile time.
var _ storescope.CatalogService = (*CatalogService)(nil)

// CatalogService fetches and decodes the first page of a store's product feed.
type CatalogService struct {
	fetcher storescope.Fetcher
	logger  *slog.Logger
}

// NewCatalogService creates a CatalogService. A nil logger discards output.
func NewCatalogService(fetcher storescope.Fetcher, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CatalogService{fetcher: fetcher, logger: logger}
}

// FetchCatalog returns the products in the feed at baseURL.
func (s *CatalogService) FetchCatalog(ctx context.Context, baseURL string) ([]storescope.Product, error) {
	feedURL, err := resolve(baseURL, FeedPath)
	if err != nil {
		return nil, err
	}

	body, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch product feed: %w", err)
	}

	products, err := ParseFeed(baseURL, []byte(body))
	if err != nil {
		return nil, err
	}
	s.logger.Debug("product feed decoded", "url", feedURL, "products", len(products))
	return products, nil
}

// ParseFeed decodes a product feed document. Product URLs are built from
// baseURL and each product's handle.
func ParseFeed(baseURL string, data []byte) ([]storescope.Product, error) {
	var f feed
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, storescope.Errorf(storescope.EINVALID, "invalid product feed: %v", err)
	}

	products := make([]storescope.Product, 0, len(f.Products))
	for _, p := range f.Products {
		productURL, _ := resolve(baseURL, "/products/"+p.Handle)
		products = append(products, storescope.Product{
			ID:          p.ID,
			Title:       p.Title,
			Handle:      p.Handle,
			Description: goquery.PlainText(p.BodyHTML),
			Price:       p.price(),
			Images:      p.images(),
			Tags:        p.tags(),
			ProductType: p.ProductType,
			Vendor:      p.Vendor,
			URL:         productURL,
		})
	}
	return products, nil
}

type feed struct {
	Products []feedProduct `json:"products"`
}

type feedProduct struct {
	ID          *int64            `json:"id"`
	Title       string            `json:"title"`
	Handle      string            `json:"handle"`
	BodyHTML    string            `json:"body_html"`
	Vendor      string            `json:"vendor"`
	ProductType string            `json:"product_type"`
	Tags        json.RawMessage   `json:"tags"`
	Variants    []json.RawMessage `json:"variants"`
	Images      []json.RawMessage `json:"images"`
}

// notAvailable is reported when the first variant carries no price.
const notAvailable = "N/A"

// price returns the first variant's price. Prices appear both as strings
// and as bare numbers.
func (p feedProduct) price() *string {
	if len(p.Variants) == 0 {
		return nil
	}
	var v struct {
		Price json.RawMessage `json:"price"`
	}
	price := notAvailable
	if err := json.Unmarshal(p.Variants[0], &v); err == nil {
		if s := scalar(v.Price); s != "" {
			price = s
		}
	}
	return &price
}

// images accepts both {"src": "..."} objects and bare strings.
func (p feedProduct) images() []string {
	images := []string{}
	for _, raw := range p.Images {
		var src string
		if err := json.Unmarshal(raw, &src); err == nil {
			if src != "" {
				images = append(images, src)
			}
			continue
		}
		var obj struct {
			Src string `json:"src"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil && obj.Src != "" {
			images = append(images, obj.Src)
		}
	}
	return images
}

// tags accepts a JSON array or a comma separated string.
func (p feedProduct) tags() []string {
	tags := []string{}
	if len(p.Tags) == 0 {
		return tags
	}
	var list []string
	if err := json.Unmarshal(p.Tags, &list); err == nil {
		for _, t := range list {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		return tags
	}
	var joined string
	if err := json.Unmarshal(p.Tags, &joined); err == nil {
		for _, t := range strings.Split(joined, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// scalar renders a JSON string or number as text. Other values yield "".
func scalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// resolve joins an absolute path onto the store root.
func resolve(baseURL, path string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", storescope.Errorf(storescope.EINVALID, "invalid base URL: %v", err)
	}
	return base.ResolveReference(&url.URL{Path: path}).String(), nil
}
