package goquery

import (
	"context"
	"regexp"
	"strings"

	"github.com/fwojciec/storescope"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(?:\+?1[-.\s]?)?(?:\(\d{3}\)|\b\d{3})[-.\s]?\d{3}[-.\s]?\d{4}\b`)
)

// ContactExtractor collects emails, phone numbers and a postal address.
type ContactExtractor struct {
	Email *regexp.Regexp
	Phone *regexp.Regexp
	// ContactPath is fetched for additional emails.
	ContactPath string

	loader *Loader
}

// NewContactExtractor returns an extractor with the default patterns.
func NewContactExtractor(loader *Loader) *ContactExtractor {
	return &ContactExtractor{
		Email:       emailPattern,
		Phone:       phonePattern,
		ContactPath: "/pages/contact",
		loader:      loader,
	}
}

// Extract scans the home page for emails, phones and an <address>, then
// merges emails found on the contact page. Phones come from the home page
// only.
func (e *ContactExtractor) Extract(ctx context.Context, home *Page, baseURL string) storescope.ContactInfo {
	text := home.Text()
	emails := newOrderedSet()
	emails.add(e.Email.FindAllString(text, -1)...)
	phones := newOrderedSet()
	for _, p := range e.Phone.FindAllString(text, -1) {
		phones.add(strings.TrimSpace(p))
	}

	info := storescope.ContactInfo{
		Phones:  phones.items,
		Address: storescope.StringPtr(VisibleText(home.Document().Find("address").First())),
	}

	if e.ContactPath != "" {
		if page, ok := e.loader.Load(ctx, ResolveURL(baseURL, e.ContactPath)); ok {
			emails.add(e.Email.FindAllString(page.Text(), -1)...)
		}
	}
	info.Emails = emails.items

	return info
}

// orderedSet keeps the first occurrence of each string, comparing emails
// case-insensitively.
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool), items: []string{}}
}

func (s *orderedSet) add(values ...string) {
	for _, v := range values {
		key := strings.ToLower(v)
		if v == "" || s.seen[key] {
			continue
		}
		s.seen[key] = true
		s.items = append(s.items, v)
	}
}
