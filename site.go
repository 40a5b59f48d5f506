package termspider

import (
	"net/url"
	"strings"
)

// Site is a configured seed. The domain is the seed's host and scopes the
// crawl: only links on the same host are followed.
type Site struct {
	BaseURL string
	Domain  string
}

// NewSite validates rawURL and returns the Site it seeds.
func NewSite(rawURL string) (*Site, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, Errorf(EINVALID, "site URL required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid site URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALID, "site URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return nil, Errorf(EINVALID, "site URL %q has no host", rawURL)
	}
	return &Site{BaseURL: rawURL, Domain: u.Host}, nil
}

// Contains returns true if rawURL is on the site's domain.
func (s *Site) Contains(rawURL string) bool {
	return HostOf(rawURL) == s.Domain
}
