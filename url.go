package termspider

import (
	"net/url"
	"strings"
)

// NormalizeURL resolves href against base and strips the fragment.
// The result is the dedup key used by the frontier. Empty or unparsable
// hrefs return an EMALFORMED error; callers skip such links.
func NormalizeURL(base, href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", Errorf(EMALFORMED, "empty href")
	}

	b, err := url.Parse(base)
	if err != nil {
		return "", WrapError(EMALFORMED, err, "invalid base URL %q", base)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", WrapError(EMALFORMED, err, "invalid href %q", href)
	}

	resolved := b.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""
	return resolved.String(), nil
}

// HostOf returns the host (including any port) of rawURL.
// Returns an empty string if rawURL cannot be parsed.
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
