// internal/writers/tsv.go
package writers

import (
	"bufio"
	"strconv"

	"alnn/internal/metric"
	"alnn/internal/search"
)

// FormatTSV writes query_id<TAB>neighbor_id<TAB>score lines.
const FormatTSV = "tsv"

func init() { Register(FormatTSV, openTSV) }

// FormatScore renders a score as a plain decimal: 1, 0.75, 12.
func FormatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

func openTSV(bw *bufio.Writer, _ metric.Kind, header bool) (RowFunc, error) {
	if header {
		if _, err := bw.WriteString("query_id\tneighbor_id\tscore\n"); err != nil {
			return nil, err
		}
	}
	var num []byte
	return func(r search.Result) error {
		num = strconv.AppendFloat(num[:0], r.Score, 'f', -1, 64)
		bw.WriteString(r.QueryID)
		bw.WriteByte('\t')
		bw.WriteString(r.NeighborID)
		bw.WriteByte('\t')
		bw.Write(num)
		return bw.WriteByte('\n')
	}, nil
}
