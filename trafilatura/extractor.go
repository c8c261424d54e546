// Package trafilatura extracts the main content of store pages with
// go-trafilatura, deferring to a fallback extractor when a page yields
// nothing usable.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/storescope"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements storescope.Extractor at compile time.
var _ storescope.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	fallback storescope.Extractor
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFallback sets the extractor used when trafilatura fails or finds no
// content. Store home pages are often mostly navigation and product grids.
func WithFallback(next storescope.Extractor) Option {
	return func(e *Extractor) {
		e.fallback = next
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*storescope.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, storescope.Errorf(storescope.EINVALID, "empty HTML input")
	}

	result, err := e.extract(rawHTML)
	if err == nil && strings.TrimSpace(result.ContentHTML) != "" {
		return result, nil
	}
	if e.fallback == nil {
		return result, err
	}

	fb, fbErr := e.fallback.Extract(rawHTML)
	if fbErr != nil {
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	if fb.Title == "" && result != nil {
		fb.Title = result.Title
	}
	return fb, nil
}

func (e *Extractor) extract(rawHTML string) (*storescope.ExtractResult, error) {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	title := result.Metadata.Title
	if title == "" {
		title = result.Metadata.Sitename
	}

	return &storescope.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
