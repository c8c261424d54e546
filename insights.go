package storescope

import (
	"context"
	"time"
)

// StatusSuccess is the only status an assembled BrandInsights carries.
// Failures are reported as errors instead of a status value.
const StatusSuccess = "success"

// Product is a single catalog or featured product.
// Title and Handle are enough to display a product; every other field is
// best-effort.
type Product struct {
	ID          *int64   `json:"id"`
	Title       string   `json:"title"`
	Handle      string   `json:"handle"`
	Description string   `json:"description,omitempty"`
	Price       *string  `json:"price"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
	ProductType string   `json:"product_type,omitempty"`
	Vendor      string   `json:"vendor,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// FAQ is a question and answer pair. Both are non-empty.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Platform identifies a social network.
type Platform string

// Supported social platforms.
const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformLinkedIn  Platform = "linkedin"
)

// SocialHandle is a store's account on a social platform.
type SocialHandle struct {
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`
	Handle   string   `json:"handle,omitempty"`
}

// ContactInfo holds contact details found on the store's pages.
type ContactInfo struct {
	Emails  []string `json:"emails"`
	Phones  []string `json:"phones"`
	Address *string  `json:"address"`
}

// BrandInsights is the aggregate extraction result for one store.
// Pointer fields are nil when nothing could be extracted for them.
type BrandInsights struct {
	ID                 string            `json:"id,omitempty"`
	WebsiteURL         string            `json:"website_url"`
	BrandName          string            `json:"brand_name"`
	BrandDescription   *string           `json:"brand_description"`
	ProductCatalog     []Product         `json:"product_catalog"`
	HeroProducts       []Product         `json:"hero_products"`
	PrivacyPolicy      *string           `json:"privacy_policy"`
	ReturnRefundPolicy *string           `json:"return_refund_policy"`
	FAQs               []FAQ             `json:"faqs"`
	SocialHandles      []SocialHandle    `json:"social_handles"`
	ContactInfo        ContactInfo       `json:"contact_info"`
	ImportantLinks     map[string]string `json:"important_links"`
	Summary            string            `json:"summary,omitempty"`
	ExtractedAt        time.Time         `json:"extracted_at"`
	TotalProducts      int               `json:"total_products"`
	Status             string            `json:"status"`
}

// InsightsService extracts brand insights from a storefront.
type InsightsService interface {
	// FetchInsights fetches the store at websiteURL and extracts every facet.
	// Returns EINVALID for malformed URLs and EUNREACHABLE when the home
	// page cannot be fetched. Facet-level failures never produce an error.
	FetchInsights(ctx context.Context, websiteURL string) (*BrandInsights, error)
}

// CatalogService reads a store's structured product feed.
type CatalogService interface {
	// FetchCatalog returns the products listed on the first page of the feed.
	FetchCatalog(ctx context.Context, baseURL string) ([]Product, error)
}

// Enricher produces generative-text enrichment for extracted insights.
type Enricher interface {
	// Enrich returns a short narrative for the insights. homeHTML is the
	// raw markup of the store's home page.
	Enrich(ctx context.Context, insights *BrandInsights, homeHTML string) (string, error)
}

// Matcher decides whether a piece of markup (a class attribute, an href,
// link text) carries the signal an extractor is looking for.
type Matcher interface {
	Match(s string) bool
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
