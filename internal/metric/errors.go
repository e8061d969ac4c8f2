// internal/metric/errors.go
package metric

import "fmt"

// LengthMismatchError is returned when two sequences of different aligned
// length are compared.
type LengthMismatchError struct {
	AID, BID   string
	ALen, BLen int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("cannot compare %s (len %d) with %s (len %d): lengths differ",
		e.AID, e.ALen, e.BID, e.BLen)
}
