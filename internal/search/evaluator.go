package search

import (
	"sync"
)

// Evaluator guards debounced search evaluation with a monotonically
// increasing sequence number: a completed evaluation is applied only if it
// is the latest one issued, so a stale run can never overwrite a newer
// result.
type Evaluator struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
	query   string
	results []Scored
}

// Begin issues a sequence number for a new evaluation.
func (e *Evaluator) Begin() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.issued++
	return e.issued
}

// Commit applies a finished evaluation unless a newer one has been issued
// since. Returns whether the result was applied.
func (e *Evaluator) Commit(seq uint64, query string, results []Scored) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.issued {
		return false
	}
	e.applied = seq
	e.query = query
	e.results = results
	return true
}

// Current returns the last applied query and results.
func (e *Evaluator) Current() (string, []Scored) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.query, e.results
}

// Run evaluates a query against the entries and commits the result if it
// is still the latest.
func (e *Evaluator) Run(query string, entries []Entry) []Scored {
	seq := e.Begin()
	results := Search(query, entries)
	e.Commit(seq, query, results)
	return results
}
