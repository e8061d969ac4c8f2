// internal/summary/summary.go
package summary

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"alnn/internal/metric"
	"alnn/internal/search"
)

// Stats summarises the best-neighbour scores of a run.
type Stats struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	// Exact counts queries whose neighbour scored perfectly
	// (identity 1, Hamming 0).
	Exact int
}

// Of computes Stats over results. StdDev is 0 for fewer than two results.
func Of(kind metric.Kind, results []search.Result) Stats {
	if len(results) == 0 {
		return Stats{}
	}
	xs := make([]float64, len(results))
	perfect := kind.Perfect()
	var exact int
	for i, r := range results {
		xs[i] = r.Score
		if r.Score == perfect {
			exact++
		}
	}
	st := Stats{
		N:     len(xs),
		Mean:  stat.Mean(xs, nil),
		Min:   floats.Min(xs),
		Max:   floats.Max(xs),
		Exact: exact,
	}
	if len(xs) > 1 {
		st.StdDev = stat.StdDev(xs, nil)
	}
	return st
}
