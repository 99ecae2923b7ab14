// Package spatial is a bucketed index over item rectangles used to hit-test a
// moving selection box without scanning every item.
package spatial

import (
	"errors"
	"math"
	"sort"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/geom"
)

// DefaultBucketSize is the vertical extent of one bucket.
const DefaultBucketSize = 8

// ErrStaleIndex is returned when an invalidated index is queried.
var ErrStaleIndex = errors.New("spatial: query against invalidated index")

// Entry is one indexed item.
type Entry struct {
	Key  string
	Rect geom.Rect
}

// Bucket holds every entry whose rectangle crosses one vertical band.
type Bucket struct {
	Key     int
	Entries []Entry
}

// Index is an immutable snapshot of item rectangles bucketed by vertical
// position. It is built once per gesture and invalidated when it ends.
type Index struct {
	bucketSize float64
	keys       []int
	buckets    map[int]*Bucket
	entries    int
	valid      bool
}

// Stats describes the shape of an index.
type Stats struct {
	Buckets int
	Entries int
	Refs    int
}

// Collect reads the geometry of every rendered item. Items without geometry
// are skipped rather than failing the gesture.
func Collect(render grid.RenderPort) []Entry {
	keys := render.Keys()
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		r, ok := render.Rect(k)
		if !ok || r.IsEmpty() {
			continue
		}
		out = append(out, Entry{Key: k, Rect: r})
	}
	return out
}

// Build indexes entries. bucketSize <= 0 uses DefaultBucketSize.
func Build(entries []Entry, bucketSize float64) *Index {
	if bucketSize <= 0 {
		bucketSize = DefaultBucketSize
	}
	idx := &Index{
		bucketSize: bucketSize,
		buckets:    make(map[int]*Bucket),
		entries:    len(entries),
		valid:      true,
	}
	for _, e := range entries {
		lo, hi := idx.span(e.Rect.Top(), e.Rect.Bottom())
		for k := lo; k <= hi; k++ {
			b, ok := idx.buckets[k]
			if !ok {
				b = &Bucket{Key: k}
				idx.buckets[k] = b
				idx.keys = append(idx.keys, k)
			}
			b.Entries = append(b.Entries, e)
		}
	}
	sort.Ints(idx.keys)
	return idx
}

// Query returns the keys of every entry overlapping r.
func (idx *Index) Query(r geom.Rect) (grid.Set, error) {
	if idx == nil || !idx.valid {
		return nil, ErrStaleIndex
	}
	out := grid.NewSet()
	if len(idx.keys) == 0 {
		return out, nil
	}
	lo, hi := idx.span(r.Top(), r.Bottom())

	first := sort.SearchInts(idx.keys, lo)
	for i := first; i < len(idx.keys) && idx.keys[i] <= hi; i++ {
		for _, e := range idx.buckets[idx.keys[i]].Entries {
			if out.Has(e.Key) {
				continue
			}
			if e.Rect.Overlaps(r) {
				out.Add(e.Key)
			}
		}
	}
	return out, nil
}

// Invalidate marks the index stale. Later queries fail with ErrStaleIndex.
func (idx *Index) Invalidate() {
	if idx != nil {
		idx.valid = false
		idx.buckets = nil
		idx.keys = nil
	}
}

// Valid reports whether the index can still be queried.
func (idx *Index) Valid() bool {
	return idx != nil && idx.valid
}

// Buckets returns the buckets in key order.
func (idx *Index) Buckets() []Bucket {
	if !idx.Valid() {
		return nil
	}
	out := make([]Bucket, 0, len(idx.keys))
	for _, k := range idx.keys {
		out = append(out, *idx.buckets[k])
	}
	return out
}

// Stats returns bucket and entry counts.
func (idx *Index) Stats() Stats {
	if !idx.Valid() {
		return Stats{}
	}
	s := Stats{Buckets: len(idx.keys), Entries: idx.entries}
	for _, b := range idx.buckets {
		s.Refs += len(b.Entries)
	}
	return s
}

func (idx *Index) span(top, bottom float64) (int, int) {
	return int(math.Floor(top / idx.bucketSize)), int(math.Floor(bottom / idx.bucketSize))
}

// BruteForce returns the keys of entries overlapping r by scanning all of them.
func BruteForce(entries []Entry, r geom.Rect) grid.Set {
	out := grid.NewSet()
	for _, e := range entries {
		if e.Rect.Overlaps(r) {
			out.Add(e.Key)
		}
	}
	return out
}
