package mock

import (
	"context"

	"github.com/fwojciec/termspider"
)

var _ termspider.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of termspider.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*termspider.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*termspider.Response, error) {
	return f.FetchFn(ctx, url)
}
