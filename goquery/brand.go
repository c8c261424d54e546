package goquery

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/storescope"
)

// BrandNameExtractor resolves a store's brand name. It tries, in order,
// the page title, a logo image's alt text, the og:site_name meta tag and
// finally the domain name, so it always produces a value.
type BrandNameExtractor struct {
	// Separators split a title such as "Brand - Tagline"; the first part is kept.
	Separators []string
	// Generic titles are rejected as brand names.
	Generic []string
	// Logo matches the class attribute of the logo image.
	Logo storescope.Matcher
}

// NewBrandNameExtractor returns an extractor with the default signals.
func NewBrandNameExtractor() *BrandNameExtractor {
	return &BrandNameExtractor{
		Separators: []string{" - ", " | "},
		Generic:    []string{"home", "homepage"},
		Logo:       MustPattern(`logo`),
	}
}

// Extract returns the brand name for page fetched from baseURL.
func (e *BrandNameExtractor) Extract(page *Page, baseURL string) string {
	if name := e.fromTitle(page.Title()); name != "" {
		return name
	}

	var alt string
	page.FindByClass("img", e.Logo).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		alt = strings.TrimSpace(s.AttrOr("alt", ""))
		return alt == ""
	})
	if alt != "" {
		return alt
	}

	if site, ok := page.MetaProperty("og:site_name"); ok {
		return site
	}

	return DomainName(baseURL)
}

func (e *BrandNameExtractor) fromTitle(title string) string {
	if title == "" || e.isGeneric(title) {
		return ""
	}
	for _, sep := range e.Separators {
		if i := strings.Index(title, sep); i >= 0 {
			title = title[:i]
		}
	}
	title = strings.TrimSpace(title)
	if e.isGeneric(title) {
		return ""
	}
	return title
}

func (e *BrandNameExtractor) isGeneric(s string) bool {
	for _, g := range e.Generic {
		if strings.EqualFold(strings.TrimSpace(s), g) {
			return true
		}
	}
	return false
}

// DomainName derives a display name from a URL's host: "www." is dropped,
// the first label is kept and title-cased, so https://example-shop.com
// becomes "Example-Shop".
func DomainName(rawURL string) string {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return rawURL
	}
	return titleCase(label)
}

// titleCase upper-cases the first letter of every letter run and
// lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

// DescriptionExtractor resolves a store's description from meta tags or
// an about/story section.
type DescriptionExtractor struct {
	// Section matches the class attribute of about-style sections.
	Section storescope.Matcher
	// MinLength is the shortest section text accepted.
	MinLength int
	// MaxLength is the length section text is truncated to.
	MaxLength int
}

// NewDescriptionExtractor returns an extractor with the default signals.
func NewDescriptionExtractor() *DescriptionExtractor {
	return &DescriptionExtractor{
		Section:   MustPattern(`about|story|brand`),
		MinLength: 50,
		MaxLength: 500,
	}
}

// Extract returns the description, or nil when none is found.
func (e *DescriptionExtractor) Extract(page *Page) *string {
	if desc, ok := page.MetaName("description"); ok {
		return &desc
	}
	if desc, ok := page.MetaProperty("og:description"); ok {
		return &desc
	}

	section := page.FindByClass("section, div", e.Section).First()
	if section.Length() == 0 {
		return nil
	}
	text := VisibleText(section)
	if len([]rune(text)) <= e.MinLength {
		return nil
	}
	return storescope.StringPtr(Truncate(text, e.MaxLength))
}
