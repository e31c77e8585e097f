package segment

import "math"

// Residual capacities below this are treated as exactly zero when placing
// segments, so caps with binary round-off (0.1 + 0.2 and friends) cannot
// leave the placement walk spinning on an unplaceable sliver.
const lenEpsilon = 1e-12

// A SegmentTable is a sparse mapping from integer slots on a continuous
// number line to the segments occupying them. Each node consumes a number
// of slots equal to its capacity, with a fractional final slot when the
// capacity is not a whole number. Slots vacated by RemoveNode are refilled
// left-to-right by later additions, keeping the right edge of the table,
// and with it the stratum count of placement queries, as small as
// possible.
//
// A SegmentTable is not safe for concurrent mutation. Queries are
// read-only, so any number of concurrent readers are safe provided no
// mutator runs at the same time.
type SegmentTable struct {
	segments map[uint64]Segment

	// index maps each present node to its occupied slots in ascending
	// order, so that a node's segments are found and deleted in O(cap)
	// without searching the whole table. RemoveNode still scans every slot
	// afterwards to recompute the max bound.
	index map[NodeID][]uint64

	maxBound float64
}

// NewSegmentTable returns an empty table.
func NewSegmentTable() *SegmentTable {
	return &SegmentTable{
		segments: map[uint64]Segment{},
		index:    map[NodeID][]uint64{},
		maxBound: 0,
	}
}

// IsEmpty returns true if the table has no segments.
func (table *SegmentTable) IsEmpty() bool {
	return len(table.segments) == 0
}

// MaxBound returns one past the rightmost occupied point on the number
// line, or zero for an empty table. It is the exclusive upper end of the
// placement domain.
func (table *SegmentTable) MaxBound() float64 {
	return table.maxBound
}

// NumNodes returns the number of distinct nodes present in the table.
func (table *SegmentTable) NumNodes() int {
	return len(table.index)
}

// AddNodes places segments for each of the given nodes, in order. The walk
// for the whole batch shares one cursor starting at slot zero, so holes
// left by removed nodes are refilled before the table's right edge grows.
// It panics if any of the nodes is already present, or has a capacity that
// is not positive and finite.
func (table *SegmentTable) AddNodes(nodes []Node) {
	next := uint64(0)
	for _, node := range nodes {
		next = table.addNode(node, next)
	}
	table.recalcMaxBound()
}

// AddNode places segments for a single node. It is equivalent to a
// one-element AddNodes batch.
func (table *SegmentTable) AddNode(node Node) {
	table.addNode(node, 0)
	table.recalcMaxBound()
}

// addNode walks slots upward from the cursor, skipping occupied slots and
// placing min(remaining, 1) of the node's capacity in each vacant one. It
// returns the cursor position after the node's last segment.
func (table *SegmentTable) addNode(node Node, next uint64) uint64 {
	if !validCap(node.Cap) {
		panic("node capacity must be positive and finite")
	}
	if _, ok := table.index[node.ID]; ok {
		panic("node already present")
	}

	remaining := node.Cap
	l := next
	for remaining >= lenEpsilon {
		if _, occupied := table.segments[l]; occupied {
			l++
			continue
		}
		length := remaining
		if length > 1 {
			length = 1
		}
		table.segments[l] = Segment{NodeID: node.ID, Len: length}
		table.index[node.ID] = append(table.index[node.ID], l)
		remaining -= length
		l++
	}
	return l
}

// RemoveNode deletes all of the node's segments, leaving its slots vacant
// for reuse by later additions. It panics if the node is not present.
func (table *SegmentTable) RemoveNode(id NodeID) {
	slots, ok := table.index[id]
	if !ok {
		panic("node not present")
	}
	for _, l := range slots {
		delete(table.segments, l)
	}
	delete(table.index, id)
	table.recalcMaxBound()
}

// SearchOnce resolves a single sample against the table. The sample hits
// if its integer slot is occupied and its fractional part falls within the
// occupant's length; otherwise it misses and the caller should draw again.
func (table *SegmentTable) SearchOnce(x float64) (NodeID, bool) {
	k := uint64(math.Floor(x))
	seg, ok := table.segments[k]
	if !ok {
		return 0, false
	}
	if seg.Len == 1 {
		return seg.NodeID, true
	}
	if x-math.Floor(x) < seg.Len {
		return seg.NodeID, true
	}
	return 0, false
}

func (table *SegmentTable) recalcMaxBound() {
	maxv := 0.0
	for l, seg := range table.segments {
		r := float64(l) + seg.Len
		if r > maxv {
			maxv = r
		}
	}
	table.maxBound = maxv
}
