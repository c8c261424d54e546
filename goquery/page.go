// Package goquery implements the storefront facet extractors on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/storescope"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page is a parsed storefront page. It is read-only once parsed and safe
// to share between extractors running concurrently.
type Page struct {
	URL string

	raw string
	doc *goquery.Document
}

// Parse parses raw markup fetched from pageURL.
func Parse(pageURL, raw string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, storescope.Errorf(storescope.EINVALID, "failed to parse HTML: %v", err)
	}
	if u, err := url.Parse(pageURL); err == nil {
		doc.Url = u
	}
	return &Page{URL: pageURL, raw: raw, doc: doc}, nil
}

// HTML returns the raw markup the page was parsed from.
func (p *Page) HTML() string { return p.raw }

// Document returns the underlying goquery document.
func (p *Page) Document() *goquery.Document { return p.doc }

// Title returns the trimmed text of the first <title> element.
func (p *Page) Title() string {
	return strings.TrimSpace(p.doc.Find("title").First().Text())
}

// MetaName returns the content of <meta name="name">, if present and non-empty.
func (p *Page) MetaName(name string) (string, bool) {
	return p.meta("name", name)
}

// MetaProperty returns the content of <meta property="prop">, if present and non-empty.
func (p *Page) MetaProperty(prop string) (string, bool) {
	return p.meta("property", prop)
}

func (p *Page) meta(attr, value string) (string, bool) {
	var content string
	p.doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, _ := s.Attr(attr); !strings.EqualFold(v, value) {
			return true
		}
		content = strings.TrimSpace(s.AttrOr("content", ""))
		return false
	})
	return content, content != ""
}

// FindByClass returns elements matching selector whose class attribute
// satisfies m, in document order.
func (p *Page) FindByClass(selector string, m storescope.Matcher) *goquery.Selection {
	return FilterByClass(p.doc.Find(selector), m)
}

// FilterByClass reduces sel to elements whose class attribute satisfies m.
func FilterByClass(sel *goquery.Selection, m storescope.Matcher) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		return ok && class != "" && m.Match(class)
	})
}

// Link is an anchor with a non-empty href.
type Link struct {
	Href string
	Text string
	Sel  *goquery.Selection
}

// Links returns every anchor with an href, in document order.
func (p *Page) Links() []Link {
	var links []Link
	p.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		links = append(links, Link{Href: href, Text: VisibleText(s), Sel: s})
	})
	return links
}

// Text returns the visible text of the whole page.
func (p *Page) Text() string {
	return VisibleText(p.doc.Selection)
}

// Resolve resolves href against the page URL. Returns href unchanged when
// either side cannot be parsed.
func (p *Page) Resolve(href string) string {
	return ResolveURL(p.URL, href)
}

// ResolveURL resolves href against base.
func ResolveURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

// hidden lists elements whose text is never rendered.
var hidden = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Head:     true,
}

// block lists elements that break text flow.
var block = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Details: true, atom.Div: true, atom.Dl: true,
	atom.Dt: true, atom.Figcaption: true, atom.Footer: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true,
	atom.H6: true, atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true,
	atom.Nav: true, atom.Ol: true, atom.P: true, atom.Section: true, atom.Summary: true,
	atom.Table: true, atom.Td: true, atom.Th: true, atom.Tr: true, atom.Ul: true,
}

// VisibleText returns the rendered text of sel with whitespace collapsed.
// Script, style and similar non-rendered elements are skipped and block
// boundaries become spaces, so adjacent blocks never run together.
func VisibleText(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if hidden[n.DataAtom] {
				return
			}
			if block[n.DataAtom] {
				b.WriteByte(' ')
				defer b.WriteByte(' ')
			}
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// PlainText strips markup from an HTML fragment.
func PlainText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return VisibleText(doc.Selection)
}

// Truncate shortens text to at most n runes, appending "..." when cut.
func Truncate(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}

// Loader fetches and parses pages. Any failure is logged and reported as
// absence; Load never returns an error.
type Loader struct {
	fetcher storescope.Fetcher
	logger  *slog.Logger
}

// NewLoader creates a Loader. A nil logger discards log output.
func NewLoader(fetcher storescope.Fetcher, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{fetcher: fetcher, logger: logger}
}

// Load fetches and parses url. The boolean is false when the page is
// unavailable for any reason.
func (l *Loader) Load(ctx context.Context, url string) (*Page, bool) {
	raw, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		l.logger.Warn("failed to fetch page", "url", url, "err", err)
		return nil, false
	}
	page, err := Parse(url, raw)
	if err != nil {
		l.logger.Warn("failed to parse page", "url", url, "err", err)
		return nil, false
	}
	return page, true
}

// Logger returns the loader's logger.
func (l *Loader) Logger() *slog.Logger { return l.logger }

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "#")
}
