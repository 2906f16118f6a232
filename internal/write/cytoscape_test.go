// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package write

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/coexpnetviz/engine/internal/coexpr"
	"github.com/coexpnetviz/engine/internal/domain"
)

func buildNetworkFixture(t *testing.T) (*domain.Store, *coexpr.Result, *coexpr.Network) {
	t.Helper()
	s := domain.NewStore()
	names := []string{"bait1", "bait2", "target1", "partner1"}
	genes := make([]domain.GeneID, len(names))
	for i, n := range names {
		g, err := s.Resolve(n)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", n, err)
		}
		genes[i] = g.ID()
	}

	fid := s.AddFamily("plaza", "HOM001")
	s.AddGeneToFamily(genes[2], fid) // target1
	s.AddGeneToFamily(genes[3], fid) // partner1, keeps the family non-orphan

	rows := [][]float64{
		{1, 2, 3, 4, 5},    // bait1
		{5, 1, 4, 2, 3},    // bait2, uncorrelated with bait1
		{1, 2, 3, 4, 5.5},  // target1, near-identical to bait1
		{9, 8, 7, 6, 5},    // partner1
	}
	flat := make([]float64, 0, len(rows)*len(rows[0]))
	for _, r := range rows {
		flat = append(flat, r...)
	}
	m := domain.NewMatrix("leaf", mat.NewDense(len(rows), len(rows[0]), flat), genes)
	if err := s.AddMatrix(m); err != nil {
		t.Fatalf("AddMatrix: %v", err)
	}

	res, err := coexpr.Find(s, []domain.GeneID{genes[0], genes[1]}, -0.9, 0.9, 1)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	return s, res, res.BuildNetwork()
}

func TestWriteNetworkProducesAllFourFiles(t *testing.T) {
	s, res, net := buildNetworkFixture(t)
	dir := t.TempDir()
	if err := WriteNetwork(dir, s, res, net); err != nil {
		t.Fatalf("WriteNetwork: %v", err)
	}

	for _, name := range []string{"network.sif", "network.node.attr", "network.edge.attr", "network_genes.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output file %s: %v", name, err)
		}
	}
}

func TestWriteNetworkSIFHasCorLine(t *testing.T) {
	s, res, net := buildNetworkFixture(t)
	dir := t.TempDir()
	if err := WriteNetwork(dir, s, res, net); err != nil {
		t.Fatalf("WriteNetwork: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "network.sif"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "\tcor\t") {
		t.Errorf("network.sif missing a cor edge line:\n%s", content)
	}
	if len(res.Neighbours) != 1 {
		t.Fatalf("fixture changed: Neighbours = %d, want 1", len(res.Neighbours))
	}
}

func TestWriteNetworkNodeAttrHasHeaderAndBaitRow(t *testing.T) {
	s, res, net := buildNetworkFixture(t)
	dir := t.TempDir()
	if err := WriteNetwork(dir, s, res, net); err != nil {
		t.Fatalf("WriteNetwork: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "network.node.attr"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if lines[0] != "node_id\tfamilies\tgenes\tspecies\tcolor" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(string(data), "bait1") || !strings.Contains(string(data), baitColour) {
		t.Errorf("node.attr missing bait1 row with bait colour:\n%s", data)
	}
}

func TestWriteNetworkGenesYAMLMarksBaits(t *testing.T) {
	s, res, net := buildNetworkFixture(t)
	dir := t.TempDir()
	if err := WriteNetwork(dir, s, res, net); err != nil {
		t.Fatalf("WriteNetwork: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "network_genes.yaml"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "is_bait: true") {
		t.Errorf("network_genes.yaml missing a bait entry:\n%s", content)
	}
	if !strings.Contains(content, "target1") {
		t.Errorf("network_genes.yaml missing target1:\n%s", content)
	}
}
