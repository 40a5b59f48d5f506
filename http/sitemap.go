package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/termspider"
)

// Ensure SitemapService implements termspider.SitemapService.
var _ termspider.SitemapService = (*SitemapService)(nil)

// SitemapService reads /sitemap.xml to find pages a crawl would not reach
// through links alone.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a new SitemapService with the given HTTP client
// and User-Agent. If client is nil, a client with DefaultFetchTimeout is used.
// An empty userAgent uses DefaultUserAgent.
func NewSitemapService(client *http.Client, userAgent string) *SitemapService {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &SitemapService{client: client, userAgent: userAgent}
}

// DiscoverURLs returns the page URLs listed in baseURL's /sitemap.xml that
// are on the same host. Sitemap indexes are followed. A missing sitemap
// yields an empty slice, not an error.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"})

	body, status, err := s.fetchURL(ctx, sitemapURL.String())
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return []string{}, nil
	}

	seenSitemaps := map[string]bool{sitemapURL.String(): true}
	urls, err := s.parseSitemap(ctx, body, seenSitemaps)
	if err != nil {
		return nil, err
	}

	result := []string{}
	seenURLs := make(map[string]bool)
	for _, u := range urls {
		if seenURLs[u] || termspider.HostOf(u) != base.Host {
			continue
		}
		seenURLs[u] = true
		result = append(result, u)
	}
	return result, nil
}

// processSitemap fetches and parses a nested sitemap.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Avoid processing the same sitemap twice
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, status, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", status, sitemapURL)
	}
	return s.parseSitemap(ctx, body, seen)
}

// parseSitemap parses a urlset or a sitemapindex document.
func (s *SitemapService) parseSitemap(ctx context.Context, body []byte, seen map[string]bool) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		var all []string
		for _, loc := range locs(root, "sitemap") {
			urls, err := s.processSitemap(ctx, loc, seen)
			if err != nil {
				return nil, err
			}
			all = append(all, urls...)
		}
		return all, nil
	}

	return locs(root, "url"), nil
}

// locs returns the trimmed <loc> text of every child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// fetchURL fetches a URL and returns its body and status.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, termspider.WrapError(termspider.ENETWORK, err, "GET %s", targetURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", targetURL, err)
	}
	return body, resp.StatusCode, nil
}
