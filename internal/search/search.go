// internal/search/search.go

// Package search finds, for one query, the best-scoring record among a set of
// candidates by exhaustive scan. It is domain-only: no I/O, no goroutines.
package search

import (
	"fmt"

	"alnn/internal/metric"
	"alnn/internal/seqset"
)

// Candidates is the read-only view a search scans. *seqset.View satisfies it.
type Candidates interface {
	Len() int
	Index(i int) int
	Record(i int) *seqset.Record
}

var _ Candidates = (*seqset.View)(nil)

// Result pairs one query with its nearest neighbour.
// Query and Neighbor are collection indices.
type Result struct {
	Query      int
	Neighbor   int
	QueryID    string
	NeighborID string
	Score      float64
}

// InvariantError is the panic value raised when a search precondition that
// upstream validation guarantees turns out to be broken.
type InvariantError struct {
	Msg string
	Err error
}

func (e *InvariantError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("search invariant violated: %s: %v", e.Msg, e.Err)
	}
	return "search invariant violated: " + e.Msg
}

func (e *InvariantError) Unwrap() error { return e.Err }

// Nearest scans every candidate once and returns the position (within cands)
// of the best one and its score. The last candidate among equal bests wins.
//
// Nearest panics with *InvariantError if a comparison fails or if no
// candidate could be selected.
func Nearest(kind metric.Kind, query *seqset.Record, cands Candidates) (int, float64) {
	score, err := metric.Provider(kind)
	if err != nil {
		panic(&InvariantError{Msg: "metric", Err: err})
	}
	best, bestScore := -1, kind.Initial()
	skipSelf := kind.ExcludesSelf()
	for j := 0; j < cands.Len(); j++ {
		other := cands.Record(j)
		if skipSelf && other.ID == query.ID {
			continue
		}
		if len(other.Seq) != len(query.Seq) {
			panic(&InvariantError{
				Msg: "compare",
				Err: &metric.LengthMismatchError{AID: query.ID, BID: other.ID, ALen: len(query.Seq), BLen: len(other.Seq)},
			})
		}
		if s := score(query.Seq, other.Seq); kind.Better(s, bestScore) {
			best, bestScore = j, s
		}
	}
	if best < 0 {
		panic(&InvariantError{Msg: fmt.Sprintf("no candidate for query %q among %d records", query.ID, cands.Len())})
	}
	return best, bestScore
}

// One runs Nearest for query position qi of queries and resolves the result
// to collection indices and IDs.
func One(kind metric.Kind, queries, database Candidates, qi int) Result {
	q := queries.Record(qi)
	j, s := Nearest(kind, q, database)
	return Result{
		Query:      queries.Index(qi),
		Neighbor:   database.Index(j),
		QueryID:    q.ID,
		NeighborID: database.Record(j).ID,
		Score:      s,
	}
}
