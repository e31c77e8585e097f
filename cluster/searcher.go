package cluster

import (
	"github.com/renproject/asura/rng"
	"github.com/renproject/asura/segment"
)

// A Searcher drives placement queries against a segment table. It borrows
// the table for the duration of one query and must not outlive it. Each
// query seeds a fresh generator from the data key and the table's bound,
// then draws samples until enough of them land on occupied slots; a sample
// landing on a vacant slot, or past an occupant's fractional tail, is
// rejected and the next sample is drawn.
//
// Termination is guaranteed for a non-empty table: the occupied fraction
// of the domain is strictly positive and sampling within each stratum is
// uniform, with fewer than two rejections expected per hit.
type Searcher struct {
	table *segment.SegmentTable
}

// NewSearcher returns a searcher over the given table. It panics if the
// table is empty, since no sample could ever hit.
func NewSearcher(table *segment.SegmentTable) Searcher {
	if table.IsEmpty() {
		panic("segment table must not be empty")
	}
	return Searcher{table: table}
}

// Search returns the node that hosts the given key.
func (searcher Searcher) Search(key uint64) segment.NodeID {
	gen := rng.NewGenerator(key, searcher.table.MaxBound())
	for {
		x := gen.NextRand()
		if id, ok := searcher.table.SearchOnce(float64(x)); ok {
			return id
		}
	}
}

// SearchN returns up to n distinct nodes for the given key, in the order
// they were discovered, clamped to the number of nodes in the table.
// Duplicate hits are skipped; the first-seen order of the result is part
// of the placement contract and is never re-sorted.
func (searcher Searcher) SearchN(key uint64, n int) []segment.NodeID {
	limit := searcher.table.NumNodes()
	if n < limit {
		limit = n
	}

	if limit <= 0 {
		return []segment.NodeID{}
	}

	candidates := make([]segment.NodeID, 0, limit)
	seen := make(map[segment.NodeID]struct{}, limit)
	gen := rng.NewGenerator(key, searcher.table.MaxBound())
	for len(candidates) < limit {
		x := gen.NextRand()
		id, ok := searcher.table.SearchOnce(float64(x))
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		candidates = append(candidates, id)
	}
	return candidates
}
