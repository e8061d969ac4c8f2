// internal/writers/results.go
package writers

import (
	"bufio"
	"fmt"
	"io"

	"alnn/internal/metric"
	"alnn/internal/search"
	"alnn/internal/seqset"
)

// StartResultWriter spins up a writer goroutine for search results in the
// given format. Close the returned channel when done and read the error
// channel once. After a write error the goroutine keeps draining its input
// so senders never block.
func StartResultWriter(out io.Writer, format string, header bool, kind metric.Kind, bufSize int) (chan<- search.Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan search.Result, bufSize)
	errCh := make(chan error, 1)

	go func() {
		bw := bufio.NewWriterSize(out, 64<<10)
		row, err := open(format, bw, kind, header)
		for r := range in {
			if err != nil {
				continue
			}
			err = row(r)
		}
		if err == nil {
			err = bw.Flush()
		}
		errCh <- err
	}()

	return in, errCh
}

// WriteResults writes one row per query, in query order. results must be
// positionally aligned with queries; anything else is a programming error
// and panics.
func WriteResults(out io.Writer, format string, header bool, kind metric.Kind, queries *seqset.View, results []search.Result) error {
	CheckAligned(queries, results)

	in, done := StartResultWriter(out, format, header, kind, 64)
	for _, r := range results {
		in <- r
	}
	close(in)
	return <-done
}

// CheckAligned panics unless results[i] belongs to queries position i for
// every i.
func CheckAligned(queries *seqset.View, results []search.Result) {
	if len(results) != queries.Len() {
		panic(&search.InvariantError{
			Msg: fmt.Sprintf("results length %d should always match query length %d", len(results), queries.Len()),
		})
	}
	for i := range results {
		if results[i].Query != queries.Index(i) {
			panic(&search.InvariantError{
				Msg: fmt.Sprintf("result %d belongs to record %d, expected %d", i, results[i].Query, queries.Index(i)),
			})
		}
	}
}
