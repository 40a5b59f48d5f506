// Package bloom provides a probabilistic membership check for URLs.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter answers "definitely not seen" cheaply. A positive answer only means
// "maybe seen" and must be confirmed against an exact set.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected URLs at the given false
// positive rate. n of zero is treated as one.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records url.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// MaybeContains returns false if url was never added.
func (f *Filter) MaybeContains(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of distinct URLs added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
