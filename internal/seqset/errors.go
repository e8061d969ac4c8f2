// internal/seqset/errors.go
package seqset

import "fmt"

// EmptyCollectionError is returned when a collection would hold no records.
type EmptyCollectionError struct{}

func (e *EmptyCollectionError) Error() string { return "no records found" }

// LengthMismatchError reports the first record whose aligned length differs
// from the first record of the collection.
type LengthMismatchError struct {
	Index    int
	ID       string
	Expected int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("record lengths don't match: expected %d, got %d for record index %d (%s)",
		e.Expected, e.Actual, e.Index, e.ID)
}
