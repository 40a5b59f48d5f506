// Package http provides an HTTP implementation of termspider.Fetcher and a
// sitemap reader used to seed crawls.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/termspider"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 5 * time.Second

// DefaultUserAgent is a desktop browser User-Agent. Some sites serve
// different markup, or nothing, to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/115.0.0.0 Safari/537.36"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 << 20

// Ensure Fetcher implements termspider.Fetcher at compile time.
var _ termspider.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with a single GET per call. It does not retry.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (5s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
// Defaults to DefaultUserAgent if not specified.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient sets the underlying HTTP client. The client's own timeout is
// replaced by the fetcher's.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	client := &http.Client{}
	if f.client != nil {
		c := *f.client
		client = &c
	}
	client.Timeout = f.timeout
	f.client = client

	return f
}

// UserAgent returns the User-Agent sent with every request.
func (f *Fetcher) UserAgent() string {
	return f.userAgent
}

// Fetch issues one GET for url. Transport failures return an ENETWORK
// error wrapping the cause. Responses other than 200 OK are returned with
// their status and an empty body.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*termspider.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, termspider.WrapError(termspider.EMALFORMED, err, "invalid request URL %q", url)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, termspider.WrapError(termspider.ENETWORK, err, "GET %s", url)
	}
	defer resp.Body.Close()

	result := &termspider.Response{URL: url, StatusCode: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return result, nil
	}

	var r io.Reader = resp.Body
	if decoded, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type")); err == nil {
		r = decoded
	}
	body, err := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	if err != nil {
		return nil, termspider.WrapError(termspider.ENETWORK, err, "reading body of %s", url)
	}
	result.Body = string(body)

	return result, nil
}
