// pkg/api/neighbors_v1.go
package api

// NeighborV1 is the stable JSONL schema for one nearest-neighbour row.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type NeighborV1 struct {
	QueryID    string  `json:"query_id"`
	NeighborID string  `json:"neighbor_id"`
	Score      float64 `json:"score"`
	Metric     string  `json:"metric"` // "identity" | "hamming"
}
