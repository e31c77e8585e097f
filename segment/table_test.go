package segment_test

import (
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/renproject/asura/segment"
)

// The main properties that we want to test for the segment table are
//
//	1. Mass conservation: after any sequence of additions and removals,
//	the total length of a present node's segments equals its capacity.
//	2. Hole refilling: slots vacated by a removal are reused left-to-right
//	by later additions before the table's right edge grows.
//	3. The max bound always equals the right edge of the rightmost
//	occupied slot, and zero for an empty table.
//	4. SearchOnce resolves samples against slot occupancy and fractional
//	tails exactly.
//	5. Precondition violations (duplicate or unknown ids, bad capacities,
//	bad segment lengths) panic.
var _ = Describe("SegmentTable", func() {
	rand.Seed(int64(time.Now().Nanosecond()))

	// massOf sums the dumped segment lengths per node.
	massOf := func(table *segment.SegmentTable) map[segment.NodeID]float64 {
		mass := map[segment.NodeID]float64{}
		for _, row := range table.Dump().Rows {
			mass[row.NodeID] += row.Len
		}
		return mass
	}

	// rightEdge computes the max bound from the dump alone.
	rightEdge := func(table *segment.SegmentTable) float64 {
		edge := 0.0
		for _, row := range table.Dump().Rows {
			if r := float64(row.L) + row.Len; r > edge {
				edge = r
			}
		}
		return edge
	}

	Context("when adding and removing nodes at random", func() {
		Specify("the mass of every present node should equal its capacity", func() {
			for trial := 0; trial < 10; trial++ {
				table := segment.NewSegmentTable()
				caps := map[segment.NodeID]float64{}
				nextID := segment.NodeID(0)

				for step := 0; step < 50; step++ {
					if len(caps) == 0 || rand.Intn(3) > 0 {
						cap := 0.25 + rand.Float64()*10
						table.AddNode(segment.NewNode(nextID, cap))
						caps[nextID] = cap
						nextID++
					} else {
						var id segment.NodeID
						for id = range caps {
							break
						}
						table.RemoveNode(id)
						delete(caps, id)
					}
				}

				mass := massOf(table)
				Expect(len(mass)).To(Equal(len(caps)))
				Expect(table.NumNodes()).To(Equal(len(caps)))
				for id, cap := range caps {
					Expect(mass[id]).To(BeNumerically("~", cap, 1e-9))
				}
				Expect(table.MaxBound()).To(Equal(rightEdge(table)))
			}
		})

		Specify("capacities with binary round-off should terminate placement", func() {
			table := segment.NewSegmentTable()
			for i := 1; i <= 50; i++ {
				table.AddNode(segment.NewNode(segment.NodeID(i), float64(i)*0.1))
			}
			mass := massOf(table)
			for i := 1; i <= 50; i++ {
				Expect(mass[segment.NodeID(i)]).To(BeNumerically("~", float64(i)*0.1, 1e-9))
			}
		})
	})

	Context("when adding nodes after a removal", func() {
		Specify("vacated slots should be refilled before the right edge grows", func() {
			table := segment.NewSegmentTable()
			table.AddNodes([]segment.Node{{ID: 0, Cap: 3}, {ID: 1, Cap: 2}})
			Expect(table.MaxBound()).To(Equal(5.0))

			table.RemoveNode(0)
			Expect(table.MaxBound()).To(Equal(5.0))

			table.AddNode(segment.NewNode(2, 2))
			Expect(table.MaxBound()).To(Equal(5.0))
			Expect(table.Dump()).To(Equal(segment.Table{Rows: []segment.Row{
				{NodeID: 2, L: 0, Len: 2},
				{NodeID: 1, L: 3, Len: 2},
			}}))
		})

		Specify("a node larger than the holes should spill past the right edge", func() {
			table := segment.NewSegmentTable()
			table.AddNodes([]segment.Node{{ID: 0, Cap: 3}, {ID: 1, Cap: 2}})
			table.RemoveNode(0)

			table.AddNode(segment.NewNode(2, 4))
			Expect(table.MaxBound()).To(Equal(6.0))
			Expect(table.Dump()).To(Equal(segment.Table{Rows: []segment.Row{
				{NodeID: 2, L: 0, Len: 3},
				{NodeID: 1, L: 3, Len: 2},
				{NodeID: 2, L: 5, Len: 1},
			}}))
		})
	})

	Context("when resolving samples", func() {
		Specify("hits and misses should follow slot occupancy and fractional tails", func() {
			table := segment.NewSegmentTable()
			table.AddNodes([]segment.Node{{ID: 0, Cap: 1.5}, {ID: 1, Cap: 1}})
			Expect(table.MaxBound()).To(Equal(3.0))

			id, ok := table.SearchOnce(0.5)
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(segment.NodeID(0)))

			id, ok = table.SearchOnce(1.25)
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(segment.NodeID(0)))

			_, ok = table.SearchOnce(1.5)
			Expect(ok).To(BeFalse())

			_, ok = table.SearchOnce(1.75)
			Expect(ok).To(BeFalse())

			id, ok = table.SearchOnce(2.9)
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(segment.NodeID(1)))

			_, ok = table.SearchOnce(3.5)
			Expect(ok).To(BeFalse())
		})
	})

	Context("when an empty table is queried", func() {
		Specify("the max bound should be zero and every sample should miss", func() {
			table := segment.NewSegmentTable()
			Expect(table.IsEmpty()).To(BeTrue())
			Expect(table.MaxBound()).To(Equal(0.0))
			Expect(table.NumNodes()).To(Equal(0))
			_, ok := table.SearchOnce(0)
			Expect(ok).To(BeFalse())
		})
	})

	Context("when preconditions are violated", func() {
		Specify("adding a duplicate node id should panic", func() {
			table := segment.NewSegmentTable()
			table.AddNode(segment.NewNode(0, 1))
			Expect(func() { table.AddNode(segment.NewNode(0, 2)) }).To(Panic())
		})

		Specify("removing an unknown node id should panic", func() {
			table := segment.NewSegmentTable()
			table.AddNode(segment.NewNode(0, 1))
			Expect(func() { table.RemoveNode(1) }).To(Panic())
		})

		Specify("a capacity that is not positive and finite should panic", func() {
			for _, cap := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
				cap := cap
				Expect(func() { segment.NewNode(0, cap) }).To(Panic())
				table := segment.NewSegmentTable()
				Expect(func() { table.AddNode(segment.Node{ID: 0, Cap: cap}) }).To(Panic())
			}
		})

		Specify("a segment length outside (0, 1] should panic", func() {
			for _, len := range []float64{0, -0.5, 1.5, math.NaN()} {
				len := len
				Expect(func() { segment.NewSegment(0, len) }).To(Panic())
			}
			Expect(segment.NewSegment(0, 1).Len).To(Equal(1.0))
			Expect(segment.NewSegment(0, 0.5).Len).To(Equal(0.5))
		})
	})
})
