package termspider

import "context"

// Response is the outcome of a single page fetch.
type Response struct {
	URL        string
	StatusCode int
	// Body is the page markup decoded to UTF-8. Empty unless StatusCode is 200.
	Body string
}

// OK reports whether the page should be processed.
func (r *Response) OK() bool {
	return r.StatusCode == 200
}

// Fetcher retrieves pages over HTTP.
type Fetcher interface {
	// Fetch issues one GET for url. Transport failures (timeout, DNS,
	// connection reset) return an ENETWORK error wrapping the cause.
	// A non-200 status is not an error; the caller decides to skip.
	Fetch(ctx context.Context, url string) (*Response, error)
}
