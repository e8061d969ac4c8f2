// internal/seqset/seqset.go
package seqset

// Record is one aligned sequence. It is never mutated after load.
type Record struct {
	ID  string
	Seq []byte
}

// Len returns the aligned length (gaps included).
func (r *Record) Len() int { return len(r.Seq) }

// Collection owns every loaded record. Views and search results refer to
// records by their index here, so the backing slice must never be resized.
type Collection struct {
	records []Record
	width   int
}

// NewCollection takes ownership of records and checks that the set is
// non-empty and that every record has the same length as the first.
func NewCollection(records []Record) (*Collection, error) {
	if len(records) == 0 {
		return nil, &EmptyCollectionError{}
	}
	want := len(records[0].Seq)
	for i := range records {
		if got := len(records[i].Seq); got != want {
			return nil, &LengthMismatchError{
				Index:    i,
				ID:       records[i].ID,
				Expected: want,
				Actual:   got,
			}
		}
	}
	return &Collection{records: records, width: want}, nil
}

// Len is the number of records.
func (c *Collection) Len() int { return len(c.records) }

// Width is the shared alignment length.
func (c *Collection) Width() int { return c.width }

// Record returns a pointer into the arena. Callers must treat it as read-only.
func (c *Collection) Record(i int) *Record { return &c.records[i] }
