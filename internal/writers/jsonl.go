// internal/writers/jsonl.go
package writers

import (
	"bufio"
	"encoding/json"

	"alnn/internal/metric"
	"alnn/internal/search"
	"alnn/pkg/api"
)

// FormatJSONL writes one api.NeighborV1 object per line.
const FormatJSONL = "jsonl"

func init() { Register(FormatJSONL, openJSONL) }

// ToAPINeighbor converts a result to the v1 wire type.
func ToAPINeighbor(r search.Result, kind metric.Kind) api.NeighborV1 {
	return api.NeighborV1{
		QueryID:    r.QueryID,
		NeighborID: r.NeighborID,
		Score:      r.Score,
		Metric:     kind.String(),
	}
}

// JSONL has no header line; the flag is ignored.
func openJSONL(bw *bufio.Writer, kind metric.Kind, _ bool) (RowFunc, error) {
	enc := json.NewEncoder(bw)
	return func(r search.Result) error {
		return enc.Encode(ToAPINeighbor(r, kind))
	}, nil
}
