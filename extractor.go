package storescope

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// It feeds the enrichment hook, not the facet extractors.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
