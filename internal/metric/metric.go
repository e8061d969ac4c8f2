// internal/metric/metric.go

// Package metric scores pairs of aligned sequences.
//
// Two metrics are supported. PercentIdentity is the default and treats a
// column that is a gap in both sequences as absent. Hamming counts every
// differing column. Each Kind also carries the search policy that goes with
// it (which direction is better, and whether same-ID candidates are skipped),
// so callers never mix a metric with the wrong policy.
package metric

import (
	"fmt"
	"math"
	"strings"

	"alnn/internal/seqset"
)

// Gap is the alignment gap symbol.
const Gap byte = '-'

// Kind selects a metric.
type Kind int

const (
	PercentIdentity Kind = iota
	Hamming
)

func (k Kind) String() string {
	switch k {
	case PercentIdentity:
		return "identity"
	case Hamming:
		return "hamming"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// ParseKind accepts the CLI spelling of a metric.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "identity", "pct-identity", "percent-identity":
		return PercentIdentity, nil
	case "hamming":
		return Hamming, nil
	default:
		return 0, fmt.Errorf("unsupported metric %q (want identity | hamming)", s)
	}
}

// Better reports whether candidate should replace best. Ties replace, so the
// last equally scoring candidate wins.
func (k Kind) Better(candidate, best float64) bool {
	if k == Hamming {
		return candidate <= best
	}
	return candidate >= best
}

// Initial is the score a search starts from before any candidate is seen.
func (k Kind) Initial() float64 {
	if k == Hamming {
		return math.Inf(1)
	}
	return 0
}

// ExcludesSelf reports whether candidates sharing the query's ID are skipped.
func (k Kind) ExcludesSelf() bool { return k == Hamming }

// Perfect is the score of two identical, non-empty sequences.
func (k Kind) Perfect() float64 {
	if k == Hamming {
		return 0
	}
	return 1
}

// Func scores two equal-length sequences.
type Func func(a, b []byte) float64

// Provider returns the raw scoring function for k. The function does not
// check lengths; Compare does.
func Provider(k Kind) (Func, error) {
	switch k {
	case PercentIdentity:
		return identity, nil
	case Hamming:
		return hamming, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", k)
	}
}

// Compare scores a against b with metric k.
func Compare(k Kind, a, b *seqset.Record) (float64, error) {
	fn, err := Provider(k)
	if err != nil {
		return 0, err
	}
	if len(a.Seq) != len(b.Seq) {
		return 0, &LengthMismatchError{AID: a.ID, BID: b.ID, ALen: len(a.Seq), BLen: len(b.Seq)}
	}
	return fn(a.Seq, b.Seq), nil
}

// Identity is the gap-aware percent identity of a and b in [0,1].
// When every column is a double gap the score is 0.
func Identity(a, b *seqset.Record) (float64, error) { return Compare(PercentIdentity, a, b) }

// HammingDistance counts differing columns of a and b.
func HammingDistance(a, b *seqset.Record) (float64, error) { return Compare(Hamming, a, b) }

func identity(a, b []byte) float64 {
	var num, den int
	for i := range a {
		x, y := a[i], b[i]
		if x == Gap && y == Gap {
			continue
		}
		den++
		if x == y {
			num++
		}
	}
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func hamming(a, b []byte) float64 {
	var d int
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return float64(d)
}
