// Package clusterutil provides helpers for constructing random cluster
// configurations and key samples in tests.
package clusterutil

import (
	"math/rand"

	"github.com/renproject/asura/cluster"
	"github.com/renproject/asura/segment"
)

// RandomNodes returns n nodes with ids 0 through n-1 and capacities drawn
// uniformly from [0.25, maxCap).
func RandomNodes(n int, maxCap float64) []cluster.Node {
	nodes := make([]cluster.Node, n)
	for i := range nodes {
		nodes[i] = cluster.Node{
			ID:  segment.NodeID(i),
			Cap: 0.25 + rand.Float64()*(maxCap-0.25),
		}
	}
	return nodes
}

// RandomCluster returns a cluster of n nodes from RandomNodes.
func RandomCluster(n int, maxCap float64) cluster.Cluster {
	c := cluster.New()
	c.AddNodes(RandomNodes(n, maxCap))
	return c
}

// RandomKeys returns n random data keys.
func RandomKeys(n int) []uint64 {
	keys := make([]uint64, n)
	for i := range keys {
		keys[i] = rand.Uint64()
	}
	return keys
}
