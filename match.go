package termspider

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// SnippetLimit is the maximum snippet length in characters.
const SnippetLimit = 300

// MatchRecord is one recorded occurrence of a term on a page.
type MatchRecord struct {
	Term string
	URL  string

	// Snippet is the trimmed text of the matching node, at most
	// SnippetLimit characters.
	Snippet string

	// Direct is false for the placeholder record emitted when the term was
	// found in the cleaned text but no single text node contains it.
	Direct bool
}

// Key returns a stable identity for the record, used to compare records
// across runs.
func (r MatchRecord) Key() string {
	d := xxhash.New()
	_, _ = d.WriteString(r.Term)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(r.URL)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(r.Snippet)
	return fmt.Sprintf("%016x", d.Sum64())
}

// TruncateSnippet cuts s to at most SnippetLimit characters.
func TruncateSnippet(s string) string {
	n := 0
	for i := range s {
		if n == SnippetLimit {
			return s[:i]
		}
		n++
	}
	return s
}

// Matcher finds configured terms on a page.
type Matcher interface {
	// Match returns the records for every term found in the page's cleaned
	// text. A term found in the cleaned text always yields at least one record.
	Match(page *Page, terms []string) []MatchRecord
}
