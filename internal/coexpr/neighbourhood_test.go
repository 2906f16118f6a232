// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coexpr

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/coexpnetviz/engine/internal/domain"
)

func buildStore(t *testing.T, rows [][]float64, familyOf map[int]int) (*domain.Store, []domain.GeneID) {
	t.Helper()
	s := domain.NewStore()
	genes := make([]domain.GeneID, len(rows))
	for i := range rows {
		g, err := s.Resolve(string(rune('a' + i)))
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		genes[i] = g.ID()
	}

	families := make(map[int]domain.FamilyID)
	for row, fam := range familyOf {
		fid, ok := families[fam]
		if !ok {
			fid = s.AddFamily("test", string(rune('A'+fam)))
			families[fam] = fid
		}
		s.AddGeneToFamily(genes[row], fid)
	}

	flat := make([]float64, 0, len(rows)*len(rows[0]))
	for _, r := range rows {
		flat = append(flat, r...)
	}
	m := domain.NewMatrix("m", mat.NewDense(len(rows), len(rows[0]), flat), genes)
	if err := s.AddMatrix(m); err != nil {
		t.Fatalf("AddMatrix: %v", err)
	}
	return s, genes
}

func TestFindThresholdCrossingSingleTargetFamily(t *testing.T) {
	// Boundary scenario: baits b1, b2; thresholds (-0.9, 0.9); a synthetic
	// row correlating about 0.996 with b1 and about -0.27 with b2 must
	// appear as a single target-family node with one cor edge to b1.
	rows := [][]float64{
		{1, 2, 3, 4, 5}, // b1 (gene 0)
		{5, 1, 4, 2, 3}, // b2 (gene 1), uncorrelated pattern
		{1, 2, 3, 4, 5.5}, // target (gene 2), near-identical to b1
	}
	s, genes := buildStore(t, rows, map[int]int{2: 0}) // target in its own family; needs a partner to avoid orphan filter
	// add a second member to the target's family so it is not an orphan.
	partnerGene, err := s.Resolve("partner")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	families := s.IterFamilies()
	s.AddGeneToFamily(partnerGene.ID(), families[0])

	res, err := Find(s, []domain.GeneID{genes[0], genes[1]}, -0.9, 0.9, 1)
	if err != nil {
		t.Fatalf("Find: unexpected error: %v", err)
	}
	if len(res.Neighbours) != 1 {
		t.Fatalf("Neighbours = %d, want 1", len(res.Neighbours))
	}
	n := res.Neighbours[0]
	if len(n.BaitOrder) != 1 || n.BaitOrder[0] != genes[0] {
		t.Errorf("BaitOrder = %v, want only bait b1 (%v)", n.BaitOrder, genes[0])
	}
	if _, ok := n.MaxCorrelation(genes[1]); ok {
		t.Errorf("target should not correlate with b2 beyond threshold")
	}
}

func TestFindDropsOrphanFamilies(t *testing.T) {
	rows := [][]float64{
		{1, 2, 3, 4, 5}, // bait
		{1, 2, 3, 4, 5.5}, // target, singleton family (orphan)
	}
	s, genes := buildStore(t, rows, nil) // no family membership recorded at all beyond default singleton via AddFamily below
	fid := s.AddFamily("x", "1")
	s.AddGeneToFamily(genes[1], fid) // family of size 1: orphan

	res, err := Find(s, []domain.GeneID{genes[0]}, -0.5, 0.5, 1)
	if err != nil {
		t.Fatalf("Find: unexpected error: %v", err)
	}
	if len(res.Neighbours) != 0 {
		t.Errorf("Neighbours = %d, want 0 (orphan family dropped)", len(res.Neighbours))
	}
}

func TestFindEmitsBaitBaitOrthologyEdgesBothDirections(t *testing.T) {
	rows := [][]float64{
		{1, 2, 3, 4, 5},
		{2, 4, 6, 8, 10},
	}
	s, genes := buildStore(t, rows, map[int]int{0: 0, 1: 0}) // both baits share a family

	res, err := Find(s, genes, -2, 2, 1) // thresholds never crossed
	if err != nil {
		t.Fatalf("Find: unexpected error: %v", err)
	}
	if len(res.Orthologs) != 2 {
		t.Fatalf("Orthologs = %v, want 2 directed edges", res.Orthologs)
	}
	seen := map[[2]domain.GeneID]bool{}
	for _, e := range res.Orthologs {
		seen[[2]domain.GeneID{e.From, e.To}] = true
	}
	if !seen[[2]domain.GeneID{genes[0], genes[1]}] || !seen[[2]domain.GeneID{genes[1], genes[0]}] {
		t.Errorf("Orthologs = %v, want both directions present", res.Orthologs)
	}
}

func TestBaitGroupIDConcatenatesWithTrailingSemicolon(t *testing.T) {
	rows := [][]float64{
		{1, 2, 3, 4, 5},
		{1, 2, 3, 4, 5.5},
	}
	s, genes := buildStore(t, rows, nil)
	fid := s.AddFamily("x", "1")
	partner, _ := s.Resolve("partner")
	s.AddGeneToFamily(genes[1], fid)
	s.AddGeneToFamily(partner.ID(), fid)

	res, err := Find(s, []domain.GeneID{genes[0]}, -0.5, 0.5, 1)
	if err != nil {
		t.Fatalf("Find: unexpected error: %v", err)
	}
	if len(res.Neighbours) != 1 {
		t.Fatalf("Neighbours = %d, want 1", len(res.Neighbours))
	}
	baitName := s.Gene(genes[0]).Name()
	want := baitName + ";"
	if got := res.Neighbours[0].BaitGroupID(s); got != want {
		t.Errorf("BaitGroupID() = %q, want %q", got, want)
	}
}
