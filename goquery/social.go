package goquery

import (
	"regexp"

	"github.com/fwojciec/storescope"
)

// SocialRule recognises one platform's profile links. The first capture
// group of Pattern is the handle.
type SocialRule struct {
	Platform storescope.Platform
	Pattern  *regexp.Regexp
}

// DefaultSocialRules returns the built-in platform rules in match order.
func DefaultSocialRules() []SocialRule {
	return []SocialRule{
		{storescope.PlatformInstagram, regexp.MustCompile(`(?i)instagram\.com/([^/\s?#]+)`)},
		{storescope.PlatformFacebook, regexp.MustCompile(`(?i)facebook\.com/([^/\s?#]+)`)},
		{storescope.PlatformTwitter, regexp.MustCompile(`(?i)(?:twitter\.com|//(?:www\.)?x\.com)/([^/\s?#]+)`)},
		{storescope.PlatformTikTok, regexp.MustCompile(`(?i)tiktok\.com/@([^/\s?#]+)`)},
		{storescope.PlatformYouTube, regexp.MustCompile(`(?i)youtube\.com/([^/\s?#]+)`)},
		{storescope.PlatformLinkedIn, regexp.MustCompile(`(?i)linkedin\.com/company/([^/\s?#]+)`)},
	}
}

// SocialExtractor finds social media profile links.
type SocialExtractor struct {
	Rules []SocialRule
}

// NewSocialExtractor returns an extractor with the default rules.
func NewSocialExtractor() *SocialExtractor {
	return &SocialExtractor{Rules: DefaultSocialRules()}
}

// Extract returns at most one handle per platform; the first link in
// document order wins.
func (e *SocialExtractor) Extract(page *Page) []storescope.SocialHandle {
	handles := []storescope.SocialHandle{}
	seen := make(map[storescope.Platform]bool)
	for _, link := range page.Links() {
		for _, rule := range e.Rules {
			if seen[rule.Platform] {
				continue
			}
			m := rule.Pattern.FindStringSubmatch(link.Href)
			if m == nil {
				continue
			}
			seen[rule.Platform] = true
			handles = append(handles, storescope.SocialHandle{
				Platform: rule.Platform,
				URL:      link.Href,
				Handle:   m[1],
			})
		}
	}
	return handles
}
