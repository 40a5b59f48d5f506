package termspider

// Extractor turns raw markup into a Page: the cleaned, matchable text view
// and the set of outbound links on the site's domain.
type Extractor interface {
	// Extract parses html once. Parsing is lenient and does not fail on
	// malformed markup.
	Extract(site *Site, pageURL string, html string) (*Page, error)
}
