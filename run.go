package termspider

import (
	"context"
	"time"
)

// Run is a saved crawl.
type Run struct {
	ID         string    `json:"id"`
	Sites      []string  `json:"sites"`
	Terms      []string  `json:"terms"`
	Pages      int       `json:"pages"`
	Matches    int       `json:"matches"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if len(r.Sites) == 0 {
		return Errorf(EINVALID, "run sites required")
	}
	if len(r.Terms) == 0 {
		return Errorf(EINVALID, "run terms required")
	}
	return nil
}

// StoredMatch is a match record persisted with its run.
type StoredMatch struct {
	ID       string `json:"id"`
	RunID    string `json:"runId"`
	Key      string `json:"key"`
	Position int    `json:"position"`
	MatchRecord
}

// RunService represents a service for managing saved runs.
type RunService interface {
	// CreateRun saves the run and every record of store in one transaction.
	CreateRun(ctx context.Context, run *Run, store *ResultStore) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindMatches retrieves stored match records in discovery order.
	FindMatches(ctx context.Context, filter MatchFilter) ([]*StoredMatch, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// MatchFilter represents a filter for FindMatches.
type MatchFilter struct {
	RunID *string `json:"runId"`
	Term  *string `json:"term"`

	// NotInRunID excludes records whose key also appears in that run.
	NotInRunID *string `json:"notInRunId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
