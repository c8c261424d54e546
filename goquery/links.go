package goquery

import (
	"strings"
)

// LinkCategory is a named group of path fragments identifying one kind of
// navigational link.
type LinkCategory struct {
	Label     string
	Fragments []string
}

// DefaultLinkCategories returns the built-in categories in match order.
func DefaultLinkCategories() []LinkCategory {
	return []LinkCategory{
		{"Order Tracking", []string{"/pages/track-order", "/track-order", "/track", "/order-tracking"}},
		{"Contact Us", []string{"/pages/contact", "/contact", "/contact-us"}},
		{"About Us", []string{"/pages/about", "/about", "/about-us"}},
		{"Blog", []string{"/blogs", "/blog", "/news"}},
		{"Shipping", []string{"/pages/shipping", "/shipping", "/shipping-policy"}},
		{"Size Guide", []string{"/pages/size-guide", "/size-guide", "/sizing"}},
		{"Customer Service", []string{"/pages/customer-service", "/customer-service", "/support"}},
	}
}

// LinksExtractor maps link categories to the first matching URL.
type LinksExtractor struct {
	Categories []LinkCategory
}

// NewLinksExtractor returns an extractor with the default categories.
func NewLinksExtractor() *LinksExtractor {
	return &LinksExtractor{Categories: DefaultLinkCategories()}
}

// Extract returns category label to absolute URL. An anchor is assigned
// to the first category it matches; a category keeps the first anchor
// assigned to it. Categories without a match are omitted.
func (e *LinksExtractor) Extract(page *Page, baseURL string) map[string]string {
	links := make(map[string]string)
	for _, link := range page.Links() {
		if isNonHTTPLink(link.Href) {
			continue
		}
		href := strings.ToLower(link.Href)
		text := strings.ToLower(link.Text)
		for _, cat := range e.Categories {
			if !cat.matches(href, text) {
				continue
			}
			if _, ok := links[cat.Label]; !ok {
				links[cat.Label] = ResolveURL(baseURL, link.Href)
			}
			break
		}
	}
	return links
}

func (c LinkCategory) matches(href, text string) bool {
	for _, frag := range c.Fragments {
		if strings.Contains(href, strings.ToLower(frag)) {
			return true
		}
		if words := fragmentWords(frag); words != "" && text != "" && strings.Contains(text, words) {
			return true
		}
	}
	return false
}

// fragmentWords turns a path fragment into the words a link label would
// use: "/track-order" becomes "track order".
func fragmentWords(frag string) string {
	r := strings.NewReplacer("/", " ", "-", " ")
	return strings.Join(strings.Fields(strings.ToLower(r.Replace(frag))), " ")
}
