package mock

import (
	"context"

	"github.com/fwojciec/termspider"
)

var _ termspider.RunService = (*RunService)(nil)

// RunService is a mock implementation of termspider.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *termspider.Run, store *termspider.ResultStore) error
	FindRunByIDFn func(ctx context.Context, id string) (*termspider.Run, error)
	FindRunsFn    func(ctx context.Context, filter termspider.RunFilter) ([]*termspider.Run, error)
	FindMatchesFn func(ctx context.Context, filter termspider.MatchFilter) ([]*termspider.StoredMatch, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *termspider.Run, store *termspider.ResultStore) error {
	return s.CreateRunFn(ctx, run, store)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*termspider.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter termspider.RunFilter) ([]*termspider.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FindMatches(ctx context.Context, filter termspider.MatchFilter) ([]*termspider.StoredMatch, error) {
	return s.FindMatchesFn(ctx, filter)
}

var _ termspider.ResultWriter = (*ResultWriter)(nil)

// ResultWriter is a mock implementation of termspider.ResultWriter.
type ResultWriter struct {
	WriteResultsFn func(ctx context.Context, store *termspider.ResultStore) error
}

func (w *ResultWriter) WriteResults(ctx context.Context, store *termspider.ResultStore) error {
	return w.WriteResultsFn(ctx, store)
}
