package segment

import (
	"sort"

	jsoniter "github.com/json-iterator/go"
)

var jsonConfig = jsoniter.ConfigCompatibleWithStandardLibrary

// A Row describes one maximal run of consecutive slots owned by a single
// node: unit-length segments starting at slot L, with a fractional tail
// when Len is not a whole number. A freshly built table dumps to one row
// per node; removals and later refills may split a node across several
// rows.
type Row struct {
	NodeID NodeID  `json:"node_id"`
	L      uint64  `json:"l"`
	Len    float64 `json:"len"`
}

// A Table is a coalesced, serializable view of a SegmentTable, sufficient
// to reconstruct a table with identical query behavior. Rows are ordered
// by ascending L, so tables with equal contents dump to equal values.
type Table struct {
	Rows []Row `json:"rows"`
}

// Dump returns the coalesced view of the table.
func (table *SegmentTable) Dump() Table {
	slots := make([]uint64, 0, len(table.segments))
	for l := range table.segments {
		slots = append(slots, l)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })

	rows := []Row{}
	for _, l := range slots {
		seg := table.segments[l]
		if n := len(rows); n > 0 {
			last := &rows[n-1]
			// Extend the current run only while it is contiguous and made
			// of whole segments; a fractional segment always ends its run.
			if last.NodeID == seg.NodeID && float64(l-last.L) == last.Len {
				last.Len += seg.Len
				continue
			}
		}
		rows = append(rows, Row{NodeID: seg.NodeID, L: l, Len: seg.Len})
	}
	return Table{Rows: rows}
}

// Restore rebuilds a segment table from a dump. Each row is split back
// into unit-length segments plus a fractional tail at consecutive slots
// starting at the row's first slot. The restored table is
// indistinguishable from the dumped one under every query. It panics if
// two rows claim the same slot.
func Restore(t Table) *SegmentTable {
	table := NewSegmentTable()
	for _, row := range t.Rows {
		remaining := row.Len
		l := row.L
		for remaining >= lenEpsilon {
			if _, occupied := table.segments[l]; occupied {
				panic("rows must not overlap")
			}
			length := remaining
			if length > 1 {
				length = 1
			}
			table.segments[l] = Segment{NodeID: row.NodeID, Len: length}
			table.index[row.NodeID] = append(table.index[row.NodeID], l)
			remaining -= length
			l++
		}
	}
	for _, slots := range table.index {
		sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	}
	table.recalcMaxBound()
	return table
}

// MarshalJSON implements the json.Marshaler interface.
func (table Table) MarshalJSON() ([]byte, error) {
	type rawTable Table
	return jsonConfig.Marshal(rawTable(table))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (table *Table) UnmarshalJSON(data []byte) error {
	type rawTable Table
	return jsonConfig.Unmarshal(data, (*rawTable)(table))
}
