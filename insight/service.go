// Package insight orchestrates page fetching and the facet extractors into
// a single BrandInsights result.
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/storescope"
	"github.com/fwojciec/storescope/goquery"
	"golang.org/x/sync/errgroup"
)

// Ensure Service implements storescope.InsightsService at compile time.
var _ storescope.InsightsService = (*Service)(nil)

// Service fetches a store's home page and runs every facet extractor
// against it. Facet failures are logged and leave that facet empty; only
// an unreachable home page fails the whole request.
type Service struct {
	Loader      *goquery.Loader
	Catalog     storescope.CatalogService
	BrandName   *goquery.BrandNameExtractor
	Description *goquery.DescriptionExtractor
	Heroes      *goquery.HeroProductExtractor
	Privacy     *goquery.PolicyExtractor
	Refund      *goquery.PolicyExtractor
	FAQs        *goquery.FAQExtractor
	Social      *goquery.SocialExtractor
	Contact     *goquery.ContactExtractor
	Links       *goquery.LinksExtractor

	// Sitemaps, when set, supplies policy candidates once the home page
	// links are exhausted. Discovery runs at most once per request.
	Sitemaps storescope.SitemapService

	// Enricher, when set, adds a generative summary to the result.
	Enricher storescope.Enricher
	// Reports, when set, persists every result.
	Reports storescope.ReportService

	// Sequential runs the extractors one after another in declaration
	// order instead of concurrently.
	Sequential bool
	// Now stamps results. Defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// NewService returns a Service with the default extractors. Policy
// discovery consults sitemaps when sitemaps is non-nil.
func NewService(fetcher storescope.Fetcher, catalog storescope.CatalogService, sitemaps storescope.SitemapService, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	loader := goquery.NewLoader(fetcher, logger)

	return &Service{
		Loader:      loader,
		Catalog:     catalog,
		BrandName:   goquery.NewBrandNameExtractor(),
		Description: goquery.NewDescriptionExtractor(),
		Heroes:      goquery.NewHeroProductExtractor(),
		Privacy:     goquery.NewPolicyExtractor(loader, goquery.PolicyPrivacy),
		Refund:      goquery.NewPolicyExtractor(loader, goquery.PolicyRefund),
		FAQs:        goquery.NewFAQExtractor(loader),
		Social:      goquery.NewSocialExtractor(),
		Contact:     goquery.NewContactExtractor(loader),
		Links:       goquery.NewLinksExtractor(),
		Sitemaps:    sitemaps,
		Now:         time.Now,
		Logger:      logger,
	}
}

// facet is one extraction step. Each facet writes only its own field of
// the result, so facets can run concurrently without locking.
type facet struct {
	name string
	run  func(ctx context.Context) error
}

// FetchInsights implements storescope.InsightsService.
func (s *Service) FetchInsights(ctx context.Context, websiteURL string) (*storescope.BrandInsights, error) {
	baseURL, err := NormalizeURL(websiteURL)
	if err != nil {
		return nil, err
	}

	home, ok := s.Loader.Load(ctx, baseURL)
	if !ok {
		return nil, storescope.Errorf(storescope.EUNREACHABLE, "website not found or not accessible")
	}

	in := &storescope.BrandInsights{WebsiteURL: baseURL}
	sitemaps := goquery.NewSitemapLookup(s.Sitemaps, baseURL, goquery.PolicyURLs())
	facets := []facet{
		{"brand_name", func(context.Context) error {
			in.BrandName = s.BrandName.Extract(home, baseURL)
			return nil
		}},
		{"brand_description", func(context.Context) error {
			in.BrandDescription = s.Description.Extract(home)
			return nil
		}},
		{"product_catalog", func(ctx context.Context) error {
			products, err := s.Catalog.FetchCatalog(ctx, baseURL)
			in.ProductCatalog = products
			return err
		}},
		{"hero_products", func(context.Context) error {
			in.HeroProducts = s.Heroes.Extract(home, baseURL)
			return nil
		}},
		{"privacy_policy", func(ctx context.Context) error {
			in.PrivacyPolicy = s.Privacy.ExtractWith(ctx, home, baseURL, sitemaps)
			return nil
		}},
		{"return_refund_policy", func(ctx context.Context) error {
			in.ReturnRefundPolicy = s.Refund.ExtractWith(ctx, home, baseURL, sitemaps)
			return nil
		}},
		{"faqs", func(ctx context.Context) error {
			in.FAQs = s.FAQs.Extract(ctx, home, baseURL)
			return nil
		}},
		{"social_handles", func(context.Context) error {
			in.SocialHandles = s.Social.Extract(home)
			return nil
		}},
		{"contact_info", func(ctx context.Context) error {
			in.ContactInfo = s.Contact.Extract(ctx, home, baseURL)
			return nil
		}},
		{"important_links", func(context.Context) error {
			in.ImportantLinks = s.Links.Extract(home, baseURL)
			return nil
		}},
	}

	s.runFacets(ctx, baseURL, facets)
	fillDefaults(in, baseURL)

	if s.Enricher != nil {
		summary, err := s.Enricher.Enrich(ctx, in, home.HTML())
		if err != nil {
			s.Logger.Warn("enrichment failed", "url", baseURL, "err", err)
		} else {
			in.Summary = summary
		}
	}

	in.TotalProducts = len(in.ProductCatalog)
	in.ExtractedAt = s.now().UTC()
	in.Status = storescope.StatusSuccess

	if s.Reports != nil {
		report := storescope.NewReport(in)
		if err := s.Reports.CreateReport(ctx, report); err != nil {
			s.Logger.Warn("failed to save report", "url", baseURL, "err", err)
		} else {
			in.ID = report.ID
		}
	}

	return in, nil
}

// runFacets runs every facet, recovering panics so a broken extractor only
// costs its own field.
func (s *Service) runFacets(ctx context.Context, baseURL string, facets []facet) {
	safe := func(f facet) {
		defer func() {
			if r := recover(); r != nil {
				s.Logger.Warn("facet extraction panicked", "url", baseURL, "facet", f.name, "err", fmt.Sprint(r))
			}
		}()
		if err := f.run(ctx); err != nil {
			s.Logger.Warn("facet extraction failed", "url", baseURL, "facet", f.name, "err", err)
		}
	}

	if s.Sequential {
		for _, f := range facets {
			safe(f)
		}
		return
	}

	var g errgroup.Group
	for _, f := range facets {
		g.Go(func() error {
			safe(f)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// fillDefaults replaces facets left unset by a failed extractor with their
// empty values. The brand name falls back to the domain.
func fillDefaults(in *storescope.BrandInsights, baseURL string) {
	if in.BrandName == "" {
		in.BrandName = goquery.DomainName(baseURL)
	}
	if in.ProductCatalog == nil {
		in.ProductCatalog = []storescope.Product{}
	}
	if in.HeroProducts == nil {
		in.HeroProducts = []storescope.Product{}
	}
	if in.FAQs == nil {
		in.FAQs = []storescope.FAQ{}
	}
	if in.SocialHandles == nil {
		in.SocialHandles = []storescope.SocialHandle{}
	}
	if in.ContactInfo.Emails == nil {
		in.ContactInfo.Emails = []string{}
	}
	if in.ContactInfo.Phones == nil {
		in.ContactInfo.Phones = []string{}
	}
	if in.ImportantLinks == nil {
		in.ImportantLinks = map[string]string{}
	}
}

// NormalizeURL adds an https scheme when none is given and strips trailing
// slashes. Input without a host is rejected with EINVALID.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", storescope.Errorf(storescope.EINVALID, "website URL required")
	}
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", storescope.Errorf(storescope.EINVALID, "invalid website URL %q", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}
