package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/fwojciec/termspider"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ termspider.RunService = (*RunService)(nil)

// RunService implements termspider.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun saves run and the records of store. Records are numbered in
// store order: terms in configured order, records in discovery order.
func (s *RunService) CreateRun(ctx context.Context, run *termspider.Run, store *termspider.ResultStore) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	now := time.Now().UTC()
	if run.StartedAt.IsZero() {
		run.StartedAt = now
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = now
	}
	run.Matches = store.Total()

	sites, err := json.Marshal(run.Sites)
	if err != nil {
		return err
	}
	terms, err := json.Marshal(run.Terms)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, sites, terms, pages, matches, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(sites), string(terms), run.Pages, run.Matches,
		run.StartedAt.UTC().Format(time.RFC3339), run.FinishedAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches (id, run_id, term, url, snippet, direct, record_key, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	position := 0
	for _, term := range store.Terms() {
		for _, r := range store.Records(term) {
			if _, err := stmt.ExecContext(ctx, uuid.New().String(), run.ID, r.Term, r.URL, r.Snippet,
				r.Direct, r.Key(), position); err != nil {
				return err
			}
			position++
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*termspider.Run, error) {
	runs, err := s.FindRuns(ctx, termspider.RunFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, termspider.Errorf(termspider.ENOTFOUND, "run not found")
	}
	return runs[0], nil
}

// FindRuns retrieves runs matching the filter, most recent first.
func (s *RunService) FindRuns(ctx context.Context, filter termspider.RunFilter) ([]*termspider.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, sites, terms, pages, matches, started_at, finished_at FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*termspider.Run
	for rows.Next() {
		var run termspider.Run
		var sites, terms, startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &sites, &terms, &run.Pages, &run.Matches, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(sites), &run.Sites); err != nil {
			return nil, termspider.WrapError(termspider.EINTERNAL, err, "decoding sites of run %s", run.ID)
		}
		if err := json.Unmarshal([]byte(terms), &run.Terms); err != nil {
			return nil, termspider.WrapError(termspider.EINTERNAL, err, "decoding terms of run %s", run.ID)
		}
		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// FindMatches retrieves stored records matching the filter in position order.
func (s *RunService) FindMatches(ctx context.Context, filter termspider.MatchFilter) ([]*termspider.StoredMatch, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, term, url, snippet, direct, record_key, position FROM matches WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Term != nil {
		query.WriteString(" AND term = ?")
		args = append(args, *filter.Term)
	}
	if filter.NotInRunID != nil {
		query.WriteString(" AND record_key NOT IN (SELECT record_key FROM matches WHERE run_id = ?)")
		args = append(args, *filter.NotInRunID)
	}

	query.WriteString(" ORDER BY run_id, position")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*termspider.StoredMatch
	for rows.Next() {
		var m termspider.StoredMatch
		var direct sql.NullBool
		if err := rows.Scan(&m.ID, &m.RunID, &m.Term, &m.URL, &m.Snippet, &direct, &m.Key, &m.Position); err != nil {
			return nil, err
		}
		m.Direct = direct.Bool
		matches = append(matches, &m)
	}

	return matches, rows.Err()
}
