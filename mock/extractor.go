package mock

import "github.com/fwojciec/termspider"

var _ termspider.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of termspider.Extractor.
type Extractor struct {
	ExtractFn func(site *termspider.Site, pageURL string, html string) (*termspider.Page, error)
}

func (e *Extractor) Extract(site *termspider.Site, pageURL string, html string) (*termspider.Page, error) {
	return e.ExtractFn(site, pageURL, html)
}

var _ termspider.Matcher = (*Matcher)(nil)

// Matcher is a mock implementation of termspider.Matcher.
type Matcher struct {
	MatchFn func(page *termspider.Page, terms []string) []termspider.MatchRecord
}

func (m *Matcher) Match(page *termspider.Page, terms []string) []termspider.MatchRecord {
	return m.MatchFn(page, terms)
}
