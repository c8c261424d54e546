// Package bloom provides probabilistic URL deduplication for candidate
// page lists.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers URLs that have already been queued for a fetch.
// False positives are possible, so a Filter may occasionally drop a URL it
// has never seen; it never lets a duplicate through.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Visit records rawURL and reports whether it was new. URLs are
// canonicalised first so that fragment-only and case-only differences in
// scheme and host count as the same page.
func (f *Filter) Visit(rawURL string) bool {
	key := Canonical(rawURL)
	if f.f.TestString(key) {
		return false
	}
	f.f.AddString(key)
	return true
}

// Canonical normalises a URL for deduplication: the fragment and a
// trailing slash are dropped and scheme and host are lower-cased.
func Canonical(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if len(u.Path) > 1 {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}
	return u.String()
}
