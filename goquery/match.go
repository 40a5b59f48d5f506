package goquery

import (
	"regexp"
	"strings"

	"github.com/fwojciec/termspider"
	"golang.org/x/net/html"
)

var _ termspider.Matcher = (*Matcher)(nil)

// Matcher finds terms in a page's cleaned text and collects snippets from
// the page's unmodified text nodes.
type Matcher struct{}

// NewMatcher creates a new Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match returns the records for every term contained in page.CleanedText.
//
// The cleaned text decides whether a term matched at all. Snippets come
// from the raw tree, so they may include text the cleaning removed, such as
// a navigation item repeating the term. When no single raw text node holds
// the term (it spans several nodes), one placeholder record is returned.
func (m *Matcher) Match(page *termspider.Page, terms []string) []termspider.MatchRecord {
	var records []termspider.MatchRecord
	for _, term := range terms {
		if term == "" || !strings.Contains(page.CleanedText, lower(term)) {
			continue
		}

		snippets := FindSnippets(page.Root, term)
		if len(snippets) == 0 {
			records = append(records, termspider.MatchRecord{Term: term, URL: page.URL})
			continue
		}
		for _, s := range snippets {
			records = append(records, termspider.MatchRecord{
				Term:    term,
				URL:     page.URL,
				Snippet: s,
				Direct:  true,
			})
		}
	}
	return records
}

// FindSnippets returns the trimmed, truncated text of every text node under
// root that contains term, ignoring case.
func FindSnippets(root *html.Node, term string) []string {
	if root == nil {
		return nil
	}
	pattern := regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))

	var snippets []string
	walkText(root, func(n *html.Node) {
		if pattern.MatchString(n.Data) {
			snippets = append(snippets, termspider.TruncateSnippet(strings.TrimSpace(n.Data)))
		}
	})
	return snippets
}
