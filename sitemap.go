package termspider

import "context"

// SitemapService discovers URLs from a site's sitemap.
type SitemapService interface {
	// DiscoverURLs returns the page URLs listed in the site's sitemap.
	// Sitemap indexes are resolved recursively. Returns an empty slice if
	// the site has no sitemap.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
