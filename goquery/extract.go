// Package goquery implements termspider.Extractor and termspider.Matcher
// on top of goquery and golang.org/x/net/html.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/termspider"
	"golang.org/x/net/html"
)

// Defaults for the site-specific main navigation wrapper.
const (
	DefaultWrapperID  = "headerMain"
	DefaultWrapperTag = "headermain"
)

var _ termspider.Extractor = (*Extractor)(nil)

// hiddenStyle matches inline styles that hide an element.
var hiddenStyle = regexp.MustCompile(`(?i)display:\s*none|visibility:\s*hidden`)

// Extractor parses pages and produces their cleaned text and outbound links.
type Extractor struct {
	wrapperID  string
	wrapperTag string

	wrapper   cascadia.Selector
	invisible cascadia.Selector
	structure cascadia.Selector
	anchors   cascadia.Selector
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithWrapperID sets the id of the div removed first, with its descendants.
// Defaults to DefaultWrapperID.
func WithWrapperID(id string) Option {
	return func(e *Extractor) {
		e.wrapperID = id
	}
}

// WithWrapperTag sets the custom tag name removed with the navigation
// elements. Defaults to DefaultWrapperTag.
func WithWrapperTag(tag string) Option {
	return func(e *Extractor) {
		e.wrapperTag = tag
	}
}

// NewExtractor creates a new Extractor.
// Returns EINVALID if the wrapper id or tag cannot form a selector.
func NewExtractor(opts ...Option) (*Extractor, error) {
	e := &Extractor{
		wrapperID:  DefaultWrapperID,
		wrapperTag: DefaultWrapperTag,
	}
	for _, opt := range opts {
		opt(e)
	}

	var err error
	if e.wrapperID != "" {
		if e.wrapper, err = cascadia.Compile(`div[id=` + cssString(e.wrapperID) + `]`); err != nil {
			return nil, termspider.Errorf(termspider.EINVALID, "invalid wrapper id %q: %v", e.wrapperID, err)
		}
	}
	if e.invisible, err = cascadia.Compile("script, style, meta, noscript, link, comment"); err != nil {
		return nil, err
	}
	structural := "nav, header, footer, aside"
	if tag := strings.ToLower(strings.TrimSpace(e.wrapperTag)); tag != "" {
		structural += ", " + tag
	}
	if e.structure, err = cascadia.Compile(structural); err != nil {
		return nil, termspider.Errorf(termspider.EINVALID, "invalid wrapper tag %q: %v", e.wrapperTag, err)
	}
	if e.anchors, err = cascadia.Compile("a"); err != nil {
		return nil, err
	}
	return e, nil
}

// Extract parses markup once and derives the cleaned text and links from the
// same tree: cleaning works on a copy, link discovery on the original.
func (e *Extractor) Extract(site *termspider.Site, pageURL string, markup string) (*termspider.Page, error) {
	root, err := Parse(markup)
	if err != nil {
		return nil, err
	}
	return &termspider.Page{
		URL:         pageURL,
		Raw:         markup,
		Root:        root,
		CleanedText: e.CleanText(root),
		Links:       ExtractLinks(root, pageURL, site.Domain),
	}, nil
}

// Parse parses markup into a document tree. The HTML5 parsing algorithm
// recovers from malformed markup, so only read failures return an error.
func Parse(markup string) (*html.Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, termspider.Errorf(termspider.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc.Nodes[0], nil
}

// CleanText returns the lower-cased visible text of root. root itself is
// left untouched. The removal steps run in order; later steps assume the
// earlier removals.
func (e *Extractor) CleanText(root *html.Node) string {
	doc := goquery.NewDocumentFromNode(goquery.NewDocumentFromNode(root).Clone().Get(0))

	// Main navigation wrapper: only the first match.
	if e.wrapper != nil {
		doc.FindMatcher(e.wrapper).First().Remove()
	}

	doc.FindMatcher(e.invisible).Remove()
	removeComments(doc.Nodes[0])

	doc.Find("[style]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		style, _ := s.Attr("style")
		return hiddenStyle.MatchString(style)
	}).Remove()

	doc.FindMatcher(e.structure).Remove()
	doc.FindMatcher(e.anchors).Remove()

	var parts []string
	walkText(doc.Nodes[0], func(n *html.Node) {
		if s := strings.TrimSpace(n.Data); s != "" {
			parts = append(parts, s)
		}
	})
	return lower(strings.Join(strings.Fields(strings.Join(parts, " ")), " "))
}

// ExtractLinks returns the normalized href of every anchor under root whose
// host equals domain, in document order without duplicates. Empty,
// malformed and non-HTTP hrefs are dropped.
func ExtractLinks(root *html.Node, pageURL string, domain string) []string {
	seen := make(map[string]struct{})
	var links []string

	goquery.NewDocumentFromNode(root).Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if isNonHTTPLink(href) {
			return
		}

		resolved, err := termspider.NormalizeURL(pageURL, href)
		if err != nil {
			return
		}
		if termspider.HostOf(resolved) != domain {
			return
		}
		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})

	return links
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// cssString quotes s as a CSS string literal.
func cssString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `)
	return `"` + r.Replace(s) + `"`
}
