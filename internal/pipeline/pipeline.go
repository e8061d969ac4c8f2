// internal/pipeline/pipeline.go
package pipeline

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"alnn/internal/metric"
	"alnn/internal/search"
	"alnn/internal/seqset"
)

// ErrInvalidWorkers is returned by NewPool for a worker count below one.
var ErrInvalidWorkers = errors.New("worker count must be >= 1")

// Observer is told how many queries finished. It must be safe for concurrent
// use and must not block for long; it never influences results.
type Observer interface {
	Done(n int)
}

// Pool runs searches on a fixed number of goroutines.
type Pool struct {
	workers int
}

// NewPool returns a pool of the given size.
func NewPool(workers int) (*Pool, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidWorkers, workers)
	}
	return &Pool{workers: workers}, nil
}

// Workers is the configured degree of parallelism.
func (p *Pool) Workers() int { return p.workers }

// Run searches every query against the whole database and returns one result
// per query; results[i] always belongs to queries position i.
//
// Run has no cancellation path: it returns only after every query has been
// searched. A broken search invariant panics in the worker and takes the
// process down.
func (p *Pool) Run(kind metric.Kind, queries, database *seqset.View, obs Observer) []search.Result {
	n := queries.Len()
	results := make([]search.Result, n)
	if n == 0 {
		return results
	}
	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			results[i] = search.One(kind, queries, database, i)
			if obs != nil {
				obs.Done(1)
			}
			return nil
		})
	}
	// workers never fail; Wait only joins
	g.Wait()

	return results
}
