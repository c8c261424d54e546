// Package readability extracts the main content of a page with
// go-readability. It serves as the fallback when the trafilatura
// extractor finds nothing on a sparse store page.
package readability

import (
	"strings"

	"github.com/fwojciec/storescope"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements storescope.Extractor at compile time.
var _ storescope.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. The title
// falls back to the site name for pages without a usable <title>.
func (e *Extractor) Extract(rawHTML string) (*storescope.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, storescope.Errorf(storescope.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = strings.TrimSpace(article.SiteName)
	}

	return &storescope.ExtractResult{
		Title:       title,
		ContentHTML: article.Content,
	}, nil
}
