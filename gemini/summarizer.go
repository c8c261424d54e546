// Package gemini implements generative enrichment of extracted insights
// using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/storescope"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultPageTokens bounds the home page context sent with each request.
const DefaultPageTokens = 8000

// Ensure Summarizer implements storescope.Enricher at compile time.
var _ storescope.Enricher = (*Summarizer)(nil)

// Summarizer implements storescope.Enricher by asking Gemini for a short
// brand profile built from the extracted facets and the home page's main
// content.
type Summarizer struct {
	client    *genai.Client
	extractor storescope.Extractor
	converter storescope.Converter
	counter   storescope.TokenCounter

	// Model is the Gemini model name.
	Model string
	// MaxPageTokens caps the page context. Zero disables the cap.
	MaxPageTokens int
}

// NewSummarizer creates a new Summarizer. counter may be nil, in which
// case the page context is not bounded.
func NewSummarizer(client *genai.Client, extractor storescope.Extractor, converter storescope.Converter, counter storescope.TokenCounter) *Summarizer {
	return &Summarizer{
		client:        client,
		extractor:     extractor,
		converter:     converter,
		counter:       counter,
		Model:         DefaultModel,
		MaxPageTokens: DefaultPageTokens,
	}
}

// Enrich returns a short narrative profile of the store.
func (s *Summarizer) Enrich(ctx context.Context, insights *storescope.BrandInsights, homeHTML string) (string, error) {
	if insights == nil {
		return "", storescope.Errorf(storescope.EINVALID, "insights required")
	}
	if s.client == nil {
		return "", storescope.Errorf(storescope.EINTERNAL, "gemini client not configured")
	}

	page, err := s.PageMarkdown(ctx, homeHTML)
	if err != nil {
		// The facets alone are enough for a summary.
		page = ""
	}

	result, err := s.client.Models.GenerateContent(ctx, s.Model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(insights, page)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", storescope.Errorf(storescope.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// PageMarkdown reduces raw page markup to its main content as markdown,
// trimmed to MaxPageTokens when a token counter is configured.
func (s *Summarizer) PageMarkdown(ctx context.Context, rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", storescope.Errorf(storescope.EINVALID, "empty HTML input")
	}

	extracted, err := s.extractor.Extract(rawHTML)
	if err != nil {
		return "", fmt.Errorf("extract main content: %w", err)
	}
	if strings.TrimSpace(extracted.ContentHTML) == "" {
		return "", storescope.Errorf(storescope.ENOTFOUND, "no main content")
	}

	markdown, err := s.converter.Convert(extracted.ContentHTML)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}

	if s.counter == nil || s.MaxPageTokens <= 0 {
		return markdown, nil
	}
	return s.fit(ctx, markdown)
}

// fit shrinks text until it fits MaxPageTokens, cutting proportionally to
// the measured overshoot.
func (s *Summarizer) fit(ctx context.Context, text string) (string, error) {
	for range 4 {
		n, err := s.counter.CountTokens(ctx, text)
		if err != nil {
			return "", fmt.Errorf("count tokens: %w", err)
		}
		if n <= s.MaxPageTokens {
			return text, nil
		}
		runes := []rune(text)
		keep := len(runes) * s.MaxPageTokens / n * 9 / 10
		text = string(runes[:keep])
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a retail analyst. Write a concise profile of an online store in at most three short paragraphs: what it sells, who it sells to, and how customers can reach it. Use only the facts provided. Do not invent prices, policies or contact details.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt from the extracted facets and the
// optional page markdown.
func BuildUserPrompt(insights *storescope.BrandInsights, pageMarkdown string) string {
	var sb strings.Builder
	sb.WriteString("<insights>\n")
	sb.WriteString(storescope.FormatInsights(insights))
	sb.WriteString("</insights>\n")
	if pageMarkdown != "" {
		sb.WriteString("\n<homepage>\n")
		sb.WriteString(pageMarkdown)
		sb.WriteString("\n</homepage>\n")
	}
	fmt.Fprintf(&sb, "\nWrite the profile of %s.", insights.BrandName)
	return sb.String()
}
