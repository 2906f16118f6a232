// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import (
	"testing"

	"github.com/coexpnetviz/engine/internal/domain"
)

func mustMatrix(t *testing.T, s *domain.Store, dir string) {
	t.Helper()
	path := writeFile(t, dir, "m.tsv", "gene\tc1\n"+
		"a\t1\nb\t2\nc\t3\nd\t4\n")
	if _, err := ReadMatrix(s, "m", path); err != nil {
		t.Fatalf("ReadMatrix: %v", err)
	}
}

func TestReadClustering(t *testing.T) {
	dir := t.TempDir()
	s := domain.NewStore()
	mustMatrix(t, s, dir)

	path := writeFile(t, dir, "v.tsv", "a\tx\nb\tx\nc\ty\n")
	v, err := ReadClustering(s, "m", "v", path)
	if err != nil {
		t.Fatalf("ReadClustering: %v", err)
	}

	var gotUnclustered bool
	for _, cl := range v.Clusters() {
		if cl.Name == domain.UnclusteredName {
			gotUnclustered = true
			if len(cl.Rows) != 1 {
				t.Errorf("unclustered cluster has %d rows, want 1 (gene d)", len(cl.Rows))
			}
		}
	}
	if !gotUnclustered {
		t.Errorf("Clusters() = %v, want a synthetic unclustered bucket for gene d", v.Clusters())
	}
}

func TestReadClusteringRejectsGeneInTwoClusters(t *testing.T) {
	dir := t.TempDir()
	s := domain.NewStore()
	mustMatrix(t, s, dir)

	path := writeFile(t, dir, "v.tsv", "a\tx\na\ty\n")
	if _, err := ReadClustering(s, "m", "v", path); err == nil {
		t.Fatal("ReadClustering: want error for gene assigned to two clusters")
	}
}

func TestReadClusteringRejectsSamePairTwice(t *testing.T) {
	dir := t.TempDir()
	s := domain.NewStore()
	mustMatrix(t, s, dir)

	path := writeFile(t, dir, "v.tsv", "a\tx\na\tx\n")
	if _, err := ReadClustering(s, "m", "v", path); err == nil {
		t.Fatal("ReadClustering: want error for duplicate (cluster, gene) pair")
	}
}

func TestReadClusteringSkipsGeneOutsideMatrix(t *testing.T) {
	dir := t.TempDir()
	s := domain.NewStore()
	mustMatrix(t, s, dir)

	path := writeFile(t, dir, "v.tsv", "a\tx\nnotinmatrix\tx\n")
	v, err := ReadClustering(s, "m", "v", path)
	if err != nil {
		t.Fatalf("ReadClustering: %v", err)
	}
	for _, cl := range v.Clusters() {
		if cl.Name == "x" && len(cl.Rows) != 1 {
			t.Errorf("cluster x has %d rows, want 1 (only gene a)", len(cl.Rows))
		}
	}
}
