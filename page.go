package termspider

import "golang.org/x/net/html"

// Page is a fetched and parsed page. It is built per fetch, consumed by the
// Matcher and then discarded.
type Page struct {
	URL string

	// Raw is the unmodified markup.
	Raw string

	// Root is the parsed document. It must not be modified; cleaning
	// operates on a copy.
	Root *html.Node

	// CleanedText is the lower-cased visible text with navigation, hidden
	// elements, scripts and anchors removed.
	CleanedText string

	// Links are normalized same-domain outbound links in document order.
	Links []string
}
