// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coexpr

import (
	"errors"

	"github.com/coexpnetviz/engine/internal/corr"
	"github.com/coexpnetviz/engine/internal/domain"
)

// ErrInvalidThresholds is returned by Find when the negative threshold
// exceeds the positive one.
var ErrInvalidThresholds = errors.New("coexpr: negative threshold exceeds positive threshold")

// Edge is a directed bait-bait orthology relation, emitted in both
// directions for every pair of baits sharing an ortholog family (spec
// §4.4, "bait-bait orthology edges").
type Edge struct {
	From, To domain.GeneID
}

// FamilyNeighbour is an ortholog family that crosses the correlation
// threshold with at least one bait and has at least 2 member genes (the
// orphan-family filter). It is the CoExpr network's "target" node.
type FamilyNeighbour struct {
	Family domain.FamilyID

	// CorrelatingGenes holds, in first-crossing order, the family's
	// member genes that crossed the threshold with some bait.
	CorrelatingGenes []domain.GeneID

	// BaitOrder holds the baits this family correlates with, in the
	// order they were first recorded (spec §4.4, "bait-group
	// identifier").
	BaitOrder []domain.GeneID

	baitCorrelations map[domain.GeneID][]float64
}

func newFamilyNeighbour(f domain.FamilyID) *FamilyNeighbour {
	return &FamilyNeighbour{Family: f, baitCorrelations: make(map[domain.GeneID][]float64)}
}

func (n *FamilyNeighbour) record(bait, gene domain.GeneID, correlation float64) {
	if _, ok := n.baitCorrelations[bait]; !ok {
		n.BaitOrder = append(n.BaitOrder, bait)
	}
	n.baitCorrelations[bait] = append(n.baitCorrelations[bait], correlation)

	for _, g := range n.CorrelatingGenes {
		if g == gene {
			return
		}
	}
	n.CorrelatingGenes = append(n.CorrelatingGenes, gene)
}

// MaxCorrelation returns the largest correlation recorded between bait
// and any of this family's member genes, and true, or (0, false) if the
// family never crossed the threshold with bait.
func (n *FamilyNeighbour) MaxCorrelation(bait domain.GeneID) (float64, bool) {
	vals, ok := n.baitCorrelations[bait]
	if !ok {
		return 0, false
	}
	max := vals[0]
	for _, v := range vals[1:] {
		if v > max {
			max = v
		}
	}
	return max, true
}

// BaitGroupID returns the family's bait-group identifier: the names of
// BaitOrder's baits, in order, each followed by ";" (spec §4.4). Two
// families with the same identifier belong to the same bait-group.
func (n *FamilyNeighbour) BaitGroupID(store *domain.Store) string {
	id := ""
	for _, b := range n.BaitOrder {
		id += store.Gene(b).Name() + ";"
	}
	return id
}

// Result is the outcome of Find: the baits actually present in some
// expression matrix, the surviving target families, and the bait-bait
// orthology edges.
type Result struct {
	Baits      []domain.GeneID
	Neighbours []*FamilyNeighbour
	Orthologs  []Edge
}

// Find computes the co-expression neighbourhood of baits across every
// expression matrix registered on store, using correlation thresholds
// (negThreshold, posThreshold) and discarding targets whose projected
// family has fewer than 2 member genes (spec §4.4).
//
// parallel is forwarded to the per-matrix correlation block computation
// (internal/corr); it does not affect the result, only how it is
// computed.
//
// matrixNames, when non-empty, restricts both bait assignment and target
// search to the named matrices (spec §6, CoExpr job YAML's
// "expression_matrices[]"); an empty matrixNames considers every matrix
// registered on store.
func Find(store *domain.Store, baits []domain.GeneID, negThreshold, posThreshold float64, parallel int, matrixNames ...string) (*Result, error) {
	if negThreshold > posThreshold {
		return nil, ErrInvalidThresholds
	}

	allowed := make(map[string]bool, len(matrixNames))
	for _, name := range matrixNames {
		allowed[name] = true
	}
	matrixOK := func(m *domain.Matrix) bool {
		return len(allowed) == 0 || allowed[m.Name()]
	}

	present := make([]domain.GeneID, 0, len(baits))
	for _, b := range baits {
		if m, ok := store.MatrixContaining(b); ok && matrixOK(m) {
			present = append(present, b)
		}
	}

	neighbours := make(map[domain.FamilyID]*FamilyNeighbour)
	var order []domain.FamilyID

	for _, m := range store.Matrices() {
		if !matrixOK(m) {
			continue
		}
		var baitRows []int
		var baitGenes []domain.GeneID
		for _, b := range present {
			mm, ok := store.MatrixContaining(b)
			if ok && mm == m {
				row, _ := m.Row(b)
				baitRows = append(baitRows, row)
				baitGenes = append(baitGenes, b)
			}
		}
		if len(baitRows) == 0 {
			continue
		}

		block, err := corr.New(m.Dense(), baitRows, parallel)
		if err != nil {
			return nil, err
		}
		isBaitRow := make(map[int]bool, len(baitRows))
		for _, r := range baitRows {
			isBaitRow[r] = true
		}

		rows, _ := block.Dims()
		for j, bait := range baitGenes {
			for r := 0; r < rows; r++ {
				if isBaitRow[r] {
					continue
				}
				c := block.At(r, j)
				if !(c < negThreshold || c > posThreshold) {
					continue
				}
				gene := m.GeneAt(r)
				for _, f := range store.FamiliesOf(gene) {
					if store.FamilySize(f) < 2 {
						continue
					}
					fn, ok := neighbours[f]
					if !ok {
						fn = newFamilyNeighbour(f)
						neighbours[f] = fn
						order = append(order, f)
					}
					fn.record(bait, gene, c)
				}
			}
		}
	}

	result := &Result{Baits: present}
	for _, f := range order {
		result.Neighbours = append(result.Neighbours, neighbours[f])
	}
	result.Orthologs = baitOrthologyEdges(store, present)
	return result, nil
}

// baitOrthologyEdges enumerates every ordered pair of distinct baits that
// share an ortholog family containing at least 2 of baits (spec §4.4).
func baitOrthologyEdges(store *domain.Store, baits []domain.GeneID) []Edge {
	baitSet := make(map[domain.GeneID]bool, len(baits))
	for _, b := range baits {
		baitSet[b] = true
	}

	seenFamily := make(map[domain.FamilyID]bool)
	var edges []Edge
	for _, b := range baits {
		for _, f := range store.FamiliesOf(b) {
			if seenFamily[f] {
				continue
			}
			seenFamily[f] = true

			var members []domain.GeneID
			for _, g := range store.GenesOf(f) {
				if baitSet[g] {
					members = append(members, g)
				}
			}
			if len(members) < 2 {
				continue
			}
			for i := 0; i < len(members); i++ {
				for k := 0; k < len(members); k++ {
					if i == k {
						continue
					}
					edges = append(edges, Edge{From: members[i], To: members[k]})
				}
			}
		}
	}
	return edges
}
