// Package resultset defines the composed, ordered search result set.
package resultset

import "github.com/makrhub/facetdex/internal/domain/search/candidate"

// ResultSet is the merged, capped, ordered list of candidates produced by
// one pipeline run. A set is immutable once built and always replaces the
// previously published set wholesale.
type ResultSet struct {
	candidates  []candidate.Candidate
	tokens      []string
	queryID     uint64
	unavailable bool
}

// New creates a result set tagged with the expanded token set and the id
// of the query that produced it.
func New(queryID uint64, tokens []string, candidates []candidate.Candidate) ResultSet {
	return ResultSet{
		candidates: candidates,
		tokens:     tokens,
		queryID:    queryID,
	}
}

// Empty creates an empty result set for the given query id.
func Empty(queryID uint64) ResultSet {
	return ResultSet{queryID: queryID}
}

// Unavailable creates an empty, error-flagged set for a failed or timed-out
// pipeline run. Distinct from a genuine zero-result outcome.
func Unavailable(queryID uint64) ResultSet {
	return ResultSet{queryID: queryID, unavailable: true}
}

// Candidates returns the ordered candidate list.
func (r ResultSet) Candidates() []candidate.Candidate { return r.candidates }

// Tokens returns the expanded token set that produced this set.
func (r ResultSet) Tokens() []string { return r.tokens }

// QueryID returns the issuing query id.
func (r ResultSet) QueryID() uint64 { return r.queryID }

// IsUnavailable reports whether the producing pipeline run failed.
func (r ResultSet) IsUnavailable() bool { return r.unavailable }

// Len returns the number of candidates.
func (r ResultSet) Len() int { return len(r.candidates) }

// CountByKind returns how many candidates carry the given kind.
func (r ResultSet) CountByKind(k candidate.Kind) int {
	n := 0
	for _, c := range r.candidates {
		if c.Kind() == k {
			n++
		}
	}
	return n
}
