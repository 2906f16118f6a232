// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coexpr

import (
	"gonum.org/v1/gonum/graph/simple"

	"github.com/coexpnetviz/engine/internal/domain"
)

// edgeKind distinguishes a correlation edge from an orthology edge in the
// assembled network.
type edgeKind int

const (
	correlationEdge edgeKind = iota
	orthologyEdge
)

// edgeInfo is metadata for one network edge, keyed by its endpoint node
// ids; gonum's graph interfaces carry topology only, so the correlation
// weight and edge kind are tracked alongside.
type edgeInfo struct {
	kind        edgeKind
	correlation float64 // valid only for kind == correlationEdge
}

// Network is the CoExpr result assembled into a graph: bait and target-
// family nodes, joined by correlation and orthology edges. It serves
// adjacency queries and node-id lookups; the SIF/attr writers take node
// ids from it but walk Result's ordered slices for output order.
//
// Bait nodes are numbered 1..|Baits| in Result.Baits order, then
// target-family nodes in Result.Neighbours order, mirroring the node-id
// counter of the original Cytoscape writer.
type Network struct {
	Graph *simple.UndirectedGraph

	baitNode   map[domain.GeneID]int64
	familyNode map[domain.FamilyID]int64
	edges      map[[2]int64]edgeInfo
	nextID     int64
}

// BuildNetwork assembles r into a Network.
func (r *Result) BuildNetwork() *Network {
	n := &Network{
		Graph:      simple.NewUndirectedGraph(),
		baitNode:   make(map[domain.GeneID]int64),
		familyNode: make(map[domain.FamilyID]int64),
		edges:      make(map[[2]int64]edgeInfo),
		nextID:     1,
	}

	for _, b := range r.Baits {
		n.baitNode[b] = n.newNode()
	}
	for _, neigh := range r.Neighbours {
		n.familyNode[neigh.Family] = n.newNode()
	}

	for _, neigh := range r.Neighbours {
		target := n.familyNode[neigh.Family]
		for _, bait := range neigh.BaitOrder {
			corrVal, _ := neigh.MaxCorrelation(bait)
			n.addEdge(target, n.baitNode[bait], edgeInfo{kind: correlationEdge, correlation: corrVal})
		}
	}
	for _, e := range r.Orthologs {
		n.addEdge(n.baitNode[e.From], n.baitNode[e.To], edgeInfo{kind: orthologyEdge})
	}

	return n
}

func (n *Network) newNode() int64 {
	id := n.nextID
	n.nextID++
	n.Graph.AddNode(simple.Node(id))
	return id
}

func (n *Network) addEdge(a, b int64, info edgeInfo) {
	n.Graph.SetEdge(simple.Edge{F: simple.Node(a), T: simple.Node(b)})
	n.edges[[2]int64{a, b}] = info
	n.edges[[2]int64{b, a}] = info
}

// BaitNodeID returns the network node id assigned to a bait gene.
func (n *Network) BaitNodeID(g domain.GeneID) (int64, bool) {
	id, ok := n.baitNode[g]
	return id, ok
}

// FamilyNodeID returns the network node id assigned to a target family.
func (n *Network) FamilyNodeID(f domain.FamilyID) (int64, bool) {
	id, ok := n.familyNode[f]
	return id, ok
}

// IsOrthologyEdge reports whether the edge between network nodes a and b
// is a bait-bait orthology edge rather than a correlation edge.
func (n *Network) IsOrthologyEdge(a, b int64) bool {
	info, ok := n.edges[[2]int64{a, b}]
	return ok && info.kind == orthologyEdge
}
