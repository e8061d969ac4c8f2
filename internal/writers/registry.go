// internal/writers/registry.go
package writers

import (
	"bufio"
	"fmt"
	"sort"

	"alnn/internal/metric"
	"alnn/internal/search"
)

// RowFunc writes one result.
type RowFunc func(search.Result) error

// Opener prepares a format on bw, writing any header, and returns the row
// writer for it.
type Opener func(bw *bufio.Writer, kind metric.Kind, header bool) (RowFunc, error)

// Format registry (name → opener). Populated from init() in each format file.
var formats = map[string]Opener{}

// Register adds or replaces a format (last wins).
func Register(format string, fn Opener) { formats[format] = fn }

// ValidFormat reports whether a writer is registered for format.
func ValidFormat(format string) bool {
	_, ok := formats[format]
	return ok
}

// Formats lists registered format names in sorted order.
func Formats() []string {
	out := make([]string, 0, len(formats))
	for f := range formats {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func open(format string, bw *bufio.Writer, kind metric.Kind, header bool) (RowFunc, error) {
	fn, ok := formats[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(bw, kind, header)
}
