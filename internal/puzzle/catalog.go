package puzzle

import (
	"sort"

	"cloud.google.com/go/civil"
)

// Catalog is the immutable, date-ordered set of puzzles.
// It is safe for concurrent reads.
type Catalog struct {
	records []Record       // ascending by Date
	byDate  map[civil.Date]int
	byID    map[string]int
}

// Load builds a Catalog from entries. Malformed entries and repeated dates
// are returned as rejections; the first entry for a date wins.
func Load(entries []RawEntry) (*Catalog, []Rejection) {
	var rejected []Rejection
	seen := make(map[civil.Date]struct{}, len(entries))
	records := make([]Record, 0, len(entries))

	for _, e := range entries {
		rec, reason := ParseEntry(e)
		if reason != Accepted {
			rejected = append(rejected, Rejection{Key: e.Key, Reason: reason})
			continue
		}
		if _, dup := seen[rec.Date]; dup {
			rejected = append(rejected, Rejection{Key: e.Key, Reason: ReasonDuplicateDate})
			continue
		}
		seen[rec.Date] = struct{}{}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })

	c := &Catalog{
		records: records,
		byDate:  make(map[civil.Date]int, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	for i, r := range records {
		c.byDate[r.Date] = i
		c.byID[r.ID] = i
	}
	return c, rejected
}

// LookupByDate returns the puzzle dated exactly d.
func (c *Catalog) LookupByDate(d civil.Date) (Record, bool) {
	i, ok := c.byDate[d]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// LookupByID returns the puzzle with the given id.
func (c *Catalog) LookupByID(id string) (Record, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// AvailableAsOf returns, in date order, every puzzle dated on or before d.
func (c *Catalog) AvailableAsOf(d civil.Date) []Record {
	n := c.countAsOf(d)
	out := make([]Record, n)
	copy(out, c.records[:n])
	return out
}

// All returns every puzzle in date order, released or not.
func (c *Catalog) All() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// LatestAsOf returns the most recent puzzle dated on or before d.
func (c *Catalog) LatestAsOf(d civil.Date) (Record, bool) {
	n := c.countAsOf(d)
	if n == 0 {
		return Record{}, false
	}
	return c.records[n-1], true
}

// NextAfter returns the earliest puzzle dated strictly after d.
func (c *Catalog) NextAfter(d civil.Date) (Record, bool) {
	n := c.countAsOf(d)
	if n == len(c.records) {
		return Record{}, false
	}
	return c.records[n], true
}

// PuzzleNumber is the 1-based rank of d in the catalog, or 0 if no puzzle
// is dated d.
func (c *Catalog) PuzzleNumber(d civil.Date) int {
	i, ok := c.byDate[d]
	if !ok {
		return 0
	}
	return i + 1
}

// Len returns the total number of puzzles, released or not.
func (c *Catalog) Len() int { return len(c.records) }

// countAsOf returns how many puzzles are dated on or before d.
func (c *Catalog) countAsOf(d civil.Date) int {
	return sort.Search(len(c.records), func(i int) bool { return c.records[i].Date.After(d) })
}
