// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

// UnclusteredName is the reserved name of the synthetic cluster holding
// every row of a clustering's matrix not claimed by an author-named
// cluster. The leading space is load-bearing: it prevents collision with
// an author-named cluster literally called "unclustered" (spec §3, §9).
const UnclusteredName = " unclustered"

// Cluster is a named, ordered set of row indices into one expression
// matrix. Clusters within one Clustering are pairwise disjoint (spec §3).
type Cluster struct {
	Name string
	Rows []int
}

// Clustering is a named sequence of clusters partitioning (together with
// the implicit UnclusteredName bucket) the rows of one expression matrix
// (spec §3, §4 C4).
type Clustering struct {
	name       string
	matrixName string
	clusters   []*Cluster
	rowCluster map[int]*Cluster
}

// NewClustering builds a Clustering over the named matrix from the given
// author-defined clusters (in insertion order) plus the full row count of
// that matrix. Rows not covered by any cluster are gathered, in ascending
// order, into the synthetic UnclusteredName cluster, which is omitted
// entirely when it would be empty.
//
// NewClustering panics if the author-defined clusters are not pairwise
// disjoint; ingest code must detect and reject that case itself (spec §7
// kind 1, "contradictory clustering row") before constructing a
// Clustering.
func NewClustering(name, matrixName string, clusters []*Cluster, totalRows int) *Clustering {
	seen := make(map[int]bool, totalRows)
	for _, c := range clusters {
		for _, r := range c.Rows {
			if seen[r] {
				panic("domain: contradictory clustering row: row assigned to two clusters")
			}
			seen[r] = true
		}
	}

	var leftover []int
	for r := 0; r < totalRows; r++ {
		if !seen[r] {
			leftover = append(leftover, r)
		}
	}

	all := make([]*Cluster, 0, len(clusters)+1)
	all = append(all, clusters...)
	if len(leftover) > 0 {
		all = append(all, &Cluster{Name: UnclusteredName, Rows: leftover})
	}

	rowCluster := make(map[int]*Cluster, totalRows)
	for _, cl := range all {
		for _, r := range cl.Rows {
			rowCluster[r] = cl
		}
	}

	return &Clustering{name: name, matrixName: matrixName, clusters: all, rowCluster: rowCluster}
}

// Name returns the clustering's name.
func (c *Clustering) Name() string { return c.name }

// MatrixName returns the name of the expression matrix this clustering
// partitions.
func (c *Clustering) MatrixName() string { return c.matrixName }

// Clusters returns the clustering's clusters in the order they were
// defined, with the synthetic UnclusteredName cluster (if non-empty)
// last.
func (c *Clustering) Clusters() []*Cluster { return c.clusters }

// ClusterOf returns the cluster containing row, and true, or (nil, false)
// if row is not covered by any cluster (which should not happen for a
// Clustering built with NewClustering over the matrix it describes).
func (c *Clustering) ClusterOf(row int) (*Cluster, bool) {
	cl, ok := c.rowCluster[row]
	return cl, ok
}
