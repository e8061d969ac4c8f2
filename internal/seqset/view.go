// internal/seqset/view.go
package seqset

import "github.com/RoaringBitmap/roaring/v2"

// View is an order-preserving selection of records from a Collection.
// Positions are stable indices into the arena, kept ascending so a View
// always follows the collection's original order.
type View struct {
	c   *Collection
	set *roaring.Bitmap
	idx []uint32
}

func newView(c *Collection, set *roaring.Bitmap) *View {
	return &View{c: c, set: set, idx: set.ToArray()}
}

// All selects every record of c.
func All(c *Collection) *View {
	set := roaring.New()
	set.AddRange(0, uint64(c.Len()))
	return newView(c, set)
}

// Filter selects the records whose ID is in ids. A nil ids selects every
// record. Unknown IDs are ignored and duplicates collapse; a record is kept
// once regardless of how often its ID is listed. Records that share an ID
// are all selected.
func Filter(c *Collection, ids []string) *View {
	if ids == nil {
		return All(c)
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	set := roaring.New()
	for i := range c.records {
		if _, ok := want[c.records[i].ID]; ok {
			set.Add(uint32(i))
		}
	}
	return newView(c, set)
}

// Collection returns the arena the view points into.
func (v *View) Collection() *Collection { return v.c }

// Len is the number of selected records.
func (v *View) Len() int { return len(v.idx) }

// Index maps view position i to its collection index.
func (v *View) Index(i int) int { return int(v.idx[i]) }

// Record returns the record at view position i.
func (v *View) Record(i int) *Record { return v.c.Record(int(v.idx[i])) }

// Contains reports whether collection index ci is selected.
func (v *View) Contains(ci int) bool {
	if ci < 0 {
		return false
	}
	return v.set.Contains(uint32(ci))
}

// Overlap counts records selected by both views.
func (v *View) Overlap(o *View) int {
	return int(v.set.AndCardinality(o.set))
}

// IDs lists the selected identifiers in view order.
func (v *View) IDs() []string {
	out := make([]string, len(v.idx))
	for i := range v.idx {
		out[i] = v.c.records[v.idx[i]].ID
	}
	return out
}
