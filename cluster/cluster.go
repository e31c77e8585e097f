// Package cluster maps opaque data keys onto a weighted cluster of nodes,
// deterministically and without any coordinator beyond the shared cluster
// description. Adding or removing a node moves only a fraction of keys
// proportional to that node's share of the total capacity.
//
//	c := cluster.New()
//	c.AddNodes([]cluster.Node{
//		{ID: 0, Cap: 10},
//		{ID: 1, Cap: 5},
//		{ID: 2, Cap: 8},
//	})
//	c.RemoveNode(1)
//
//	candidates, ok := c.CalcCandidates(43287642786, 2)
//
// The first candidate is the primary placement; later candidates are the
// replica targets, in discovery order.
package cluster

import "github.com/renproject/asura/segment"

// A NodeID identifies a node within one cluster instance.
type NodeID = segment.NodeID

// A Node is a weighted member of a cluster.
type Node = segment.Node

// A Cluster is the public entry point of the placement engine. It owns a
// segment table exclusively and answers placement queries against it.
//
// All operations run to completion synchronously. A Cluster performs no
// internal locking: concurrent queries are safe only while no mutator
// runs, the usual single-writer-multiple-readers discipline.
type Cluster struct {
	table *segment.SegmentTable
}

// New returns an empty cluster.
func New() Cluster {
	return Cluster{table: segment.NewSegmentTable()}
}

// AddNodes adds the given nodes to the cluster, in order. It panics if any
// of the node ids is already present, or if any capacity is not positive
// and finite.
func (cluster *Cluster) AddNodes(nodes []Node) {
	cluster.table.AddNodes(nodes)
}

// RemoveNode removes a node from the cluster. Keys previously placed on it
// redistribute over the remaining nodes in proportion to their capacities.
// It panics if the node is not present.
func (cluster *Cluster) RemoveNode(id NodeID) {
	cluster.table.RemoveNode(id)
}

// NumNodes returns the number of nodes in the cluster.
func (cluster Cluster) NumNodes() int {
	return cluster.table.NumNodes()
}

// CalcCandidates returns up to n distinct node ids for the given key, in
// the order they were discovered, clamped to the number of nodes in the
// cluster. It returns ok == false if and only if the cluster has no
// nodes. Calling it twice on an unchanged cluster returns the identical
// list: the result depends only on the key, n, and the cluster contents.
func (cluster Cluster) CalcCandidates(key uint64, n int) ([]NodeID, bool) {
	if cluster.table.IsEmpty() {
		return nil, false
	}
	searcher := NewSearcher(cluster.table)
	return searcher.SearchN(key, n), true
}

// DumpTable returns a serializable description of the cluster. A cluster
// restored from the dump, in this process or another, answers every query
// identically to this one.
func (cluster Cluster) DumpTable() segment.Table {
	return cluster.table.Dump()
}

// FromTable reconstructs a cluster from a dump.
func FromTable(t segment.Table) Cluster {
	return Cluster{table: segment.Restore(t)}
}
