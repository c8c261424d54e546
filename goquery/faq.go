package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/storescope"
)

// DefaultFAQPaths are the conventional FAQ page locations, tried in order.
var DefaultFAQPaths = []string{
	"/pages/faq",
	"/pages/faqs",
	"/faq",
	"/faqs",
	"/pages/frequently-asked-questions",
}

// FAQExtractor extracts question and answer pairs from a store's FAQ page,
// falling back to the home page.
type FAQExtractor struct {
	Paths []string
	// Container matches the class attribute of FAQ sections.
	Container storescope.Matcher
	// Question matches the class attribute of question headings.
	Question storescope.Matcher
	// MinQuestionLength is the length a question must exceed.
	MinQuestionLength int
	// Limit caps the number of pairs returned.
	Limit int

	loader *Loader
}

// NewFAQExtractor returns an extractor with the default signals.
func NewFAQExtractor(loader *Loader) *FAQExtractor {
	return &FAQExtractor{
		Paths:             DefaultFAQPaths,
		Container:         MustPattern(`faq|question|accordion`),
		Question:          MustPattern(`question|title|header`),
		MinQuestionLength: 10,
		Limit:             10,
		loader:            loader,
	}
}

// Extract returns FAQ pairs from the first page that yields any.
func (e *FAQExtractor) Extract(ctx context.Context, home *Page, baseURL string) []storescope.FAQ {
	for _, path := range e.Paths {
		if ctx.Err() != nil {
			break
		}
		page, ok := e.loader.Load(ctx, ResolveURL(baseURL, path))
		if !ok {
			continue
		}
		if faqs := e.Parse(page); len(faqs) > 0 {
			return faqs
		}
	}
	return e.Parse(home)
}

// Parse extracts FAQ pairs from a single page. The answer to a question is
// the next sibling paragraph, div or definition.
func (e *FAQExtractor) Parse(page *Page) []storescope.FAQ {
	faqs := []storescope.FAQ{}
	seen := make(map[string]bool)

	page.FindByClass("div, section", e.Container).EachWithBreak(func(_ int, section *goquery.Selection) bool {
		FilterByClass(section.Find("h3, h4, h5, dt, div"), e.Question).EachWithBreak(func(_ int, q *goquery.Selection) bool {
			question := VisibleText(q)
			if len([]rune(question)) <= e.MinQuestionLength || seen[question] {
				return true
			}
			answer := VisibleText(q.NextAllFiltered("p, div, dd").First())
			if strings.TrimSpace(answer) == "" {
				return true
			}
			seen[question] = true
			faqs = append(faqs, storescope.FAQ{Question: question, Answer: answer})
			return len(faqs) < e.Limit
		})
		return len(faqs) < e.Limit
	})

	return faqs
}
