package goquery

import (
	"regexp"
	"strings"

	"github.com/fwojciec/storescope"
)

var (
	_ storescope.Matcher = (*Pattern)(nil)
	_ storescope.Matcher = Keywords(nil)
)

// Pattern matches strings against a case-insensitive regular expression.
type Pattern struct {
	re *regexp.Regexp
}

// MustPattern compiles expr as a case-insensitive Pattern. It panics on an
// invalid expression and is meant for package-level defaults.
func MustPattern(expr string) *Pattern {
	return &Pattern{re: regexp.MustCompile(`(?i)` + expr)}
}

// Match reports whether s contains a match of the pattern.
func (p *Pattern) Match(s string) bool {
	return p.re.MatchString(s)
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.re.String()
}

// Keywords matches strings containing any keyword, ignoring case.
type Keywords []string

// Match reports whether s contains any of the keywords.
func (k Keywords) Match(s string) bool {
	s = strings.ToLower(s)
	for _, kw := range k {
		if kw != "" && strings.Contains(s, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
