package termspider

import "context"

// ResultStore accumulates match records keyed by term. Records for a term
// keep discovery order. The store is not safe for concurrent use; concurrent
// crawls keep one store per worker and merge them.
type ResultStore struct {
	terms   []string
	records map[string][]MatchRecord
}

// NewResultStore creates a store for the configured terms. Every term is
// reported by Terms even if it never matches.
func NewResultStore(terms []string) *ResultStore {
	s := &ResultStore{records: make(map[string][]MatchRecord)}
	for _, t := range terms {
		s.addTerm(t)
	}
	return s
}

func (s *ResultStore) addTerm(term string) {
	if _, ok := s.records[term]; ok {
		return
	}
	s.terms = append(s.terms, term)
	s.records[term] = nil
}

// Add appends records in order.
func (s *ResultStore) Add(records ...MatchRecord) {
	for _, r := range records {
		s.addTerm(r.Term)
		s.records[r.Term] = append(s.records[r.Term], r)
	}
}

// Records returns the records for term in discovery order.
func (s *ResultStore) Records(term string) []MatchRecord {
	return s.records[term]
}

// Terms returns all terms in configuration order.
func (s *ResultStore) Terms() []string {
	return s.terms
}

// Len returns the number of records for term.
func (s *ResultStore) Len(term string) int {
	return len(s.records[term])
}

// Total returns the number of records across all terms.
func (s *ResultStore) Total() int {
	var n int
	for _, recs := range s.records {
		n += len(recs)
	}
	return n
}

// Merge appends every record of other after the records already held.
func (s *ResultStore) Merge(other *ResultStore) {
	if other == nil {
		return
	}
	for _, term := range other.terms {
		s.addTerm(term)
		s.Add(other.records[term]...)
	}
}

// ResultWriter hands a finished result store to an output layer.
type ResultWriter interface {
	WriteResults(ctx context.Context, store *ResultStore) error
}
