package crawl

import (
	"sync"

	"github.com/fwojciec/termspider"
	"github.com/fwojciec/termspider/bloom"
)

// Compile-time interface verification.
var _ termspider.Frontier = (*Frontier)(nil)

// Order selects which pending URL Next returns.
type Order int

const (
	// BreadthFirst returns pending URLs in the order they were offered.
	BreadthFirst Order = iota
	// DepthFirst returns the most recently offered URL first.
	DepthFirst
)

// String returns the order's flag value.
func (o Order) String() string {
	if o == DepthFirst {
		return "depth"
	}
	return "breadth"
}

// ParseOrder parses "breadth" or "depth". The empty string is BreadthFirst.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", "breadth", "bfs":
		return BreadthFirst, nil
	case "depth", "dfs":
		return DepthFirst, nil
	}
	return BreadthFirst, termspider.Errorf(termspider.EINVALID, "unknown crawl order %q", s)
}

// DefaultMaxPages is the page cap used when none is configured.
const DefaultMaxPages = 1000

const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the Bloom filter's false positive rate.
	frontierFalsePositiveRate = 0.01
)

// Frontier is the traversal state of one site. Pending URLs are kept in an
// explicit queue so traversal order is deterministic. A Bloom filter answers
// most "never seen" checks; the exact visited and pending sets decide
// everything else, so a false positive never drops a URL.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu sync.Mutex

	domain   string
	maxPages int
	order    Order

	seen    *bloom.Filter
	visited map[string]struct{}
	pending map[string]struct{}
	queue   []string

	pageCount int
}

// FrontierOption configures a Frontier.
type FrontierOption func(*Frontier)

// WithOrder sets the traversal order. Defaults to BreadthFirst.
func WithOrder(o Order) FrontierOption {
	return func(f *Frontier) {
		f.order = o
	}
}

// NewFrontier creates a Frontier scoped to site that stops after maxPages
// visited pages. A non-positive maxPages uses DefaultMaxPages.
func NewFrontier(site *termspider.Site, maxPages int, opts ...FrontierOption) *Frontier {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	f := &Frontier{
		domain:   site.Domain,
		maxPages: maxPages,
		seen:     bloom.NewFilter(frontierExpectedURLs, frontierFalsePositiveRate),
		visited:  make(map[string]struct{}),
		pending:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Seed adds the site's base URL as a pending candidate.
// The fragment, if any, is stripped.
func (f *Frontier) Seed(rawURL string) {
	if normalized, err := termspider.NormalizeURL(rawURL, rawURL); err == nil {
		rawURL = normalized
	}
	f.Offer(rawURL)
}

// Next pops the next pending URL according to the frontier's order.
// The bool result is false if nothing is pending.
func (f *Frontier) Next() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}

	var url string
	if f.order == DepthFirst {
		url = f.queue[len(f.queue)-1]
		f.queue = f.queue[:len(f.queue)-1]
	} else {
		url = f.queue[0]
		f.queue[0] = ""
		f.queue = f.queue[1:]
	}
	delete(f.pending, url)
	return url, true
}

// Observe marks url visited and increments the page count.
// Returns false, leaving the count unchanged, if url was already visited.
func (f *Frontier) Observe(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.visited[url]; ok {
		return false
	}
	f.visited[url] = struct{}{}
	f.seen.Add(url)
	f.pageCount++

	if _, ok := f.pending[url]; ok {
		delete(f.pending, url)
		f.removeQueued(url)
	}
	return true
}

// Offer adds url to the pending set if it is on the frontier's domain and
// neither visited nor already pending. Returns true if it was added.
func (f *Frontier) Offer(url string) bool {
	if termspider.HostOf(url) != f.domain {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.MaybeContains(url) {
		if _, ok := f.visited[url]; ok {
			return false
		}
		if _, ok := f.pending[url]; ok {
			return false
		}
	}

	f.seen.Add(url)
	f.pending[url] = struct{}{}
	f.queue = append(f.queue, url)
	return true
}

// Visited returns true if url has been observed.
func (f *Frontier) Visited(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.visited[url]
	return ok
}

// PageCount returns the number of visited pages.
func (f *Frontier) PageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pageCount
}

// Len returns the number of pending URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Done returns true once the page cap is reached or nothing is pending.
func (f *Frontier) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pageCount >= f.maxPages || len(f.queue) == 0
}

// removeQueued drops url from the queue. Callers hold f.mu.
func (f *Frontier) removeQueued(url string) {
	for i, u := range f.queue {
		if u == url {
			f.queue = append(f.queue[:i], f.queue[i+1:]...)
			return
		}
	}
}
