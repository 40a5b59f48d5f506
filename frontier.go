package termspider

// Frontier holds the traversal state of one site: the visited set, the
// pending candidates and the page counter.
type Frontier interface {
	// Seed adds the site's base URL as a pending candidate.
	Seed(url string)

	// Next pops the next pending URL.
	// Returns false if nothing is pending.
	Next() (string, bool)

	// Observe marks url visited and increments the page count.
	// Returns false if url was already visited.
	Observe(url string) bool

	// Offer adds url to the pending set if it is on the site's domain and
	// neither visited nor already pending. Returns true if it was added.
	Offer(url string) bool

	// Visited returns true if url has been observed.
	Visited(url string) bool

	// PageCount returns the number of visited pages.
	PageCount() int

	// Len returns the number of pending URLs.
	Len() int

	// Done returns true once the page cap is reached or nothing is pending.
	Done() bool
}
