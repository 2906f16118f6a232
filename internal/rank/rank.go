// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rank

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/coexpnetviz/engine/internal/corr"
	"github.com/coexpnetviz/engine/internal/domain"
)

// K is the self-ranking cutoff used by the AUSR metric.
const K = 1000

// penaltyRank is assigned to a GOI member that cannot be leave-one-out
// ranked (its cluster has no candidates, or fewer than two GOI members);
// it lies beyond K so it never contributes to the AUSR curve.
const penaltyRank = 2*K - 1

// Result is a finalised MORPH ranking: one score per row of the source
// matrix (NaN for GOI members and for candidates in clusters lacking
// either GOI or candidates), plus the cluster-leave-one-out AUSR
// self-evaluation score.
type Result struct {
	Scores []float64
	AUSR   float64

	// SelfRanks holds the sorted leave-one-out ranks r_g used to compute
	// AUSR (spec §4.3 step 3), kept for cmd/morphplot's fraction-recovered
	// diagnostic curve.
	SelfRanks []int
}

// New computes the MORPH ranking and AUSR for clustering v over a
// correlation block built with subset S = goiRows (spec §4.3). goiRows
// must equal block.Subset() in the set sense — every row in goiRows must
// have a column in block.
//
// New does not itself enforce the "fewer than 5 GOI" job-skip rule; that
// check happens at the driver level before a ranking is attempted.
func New(v *domain.Clustering, block *corr.Block, goiRows []int) (*Result, error) {
	n, _ := block.Dims()
	goiSet := make(map[int]bool, len(goiRows))
	for _, g := range goiRows {
		goiSet[g] = true
	}

	type clusterSplit struct {
		goi  []int
		cand []int
	}
	splits := make(map[string]*clusterSplit)
	var order []string
	for row := 0; row < n; row++ {
		cl, ok := v.ClusterOf(row)
		if !ok {
			continue
		}
		sp, ok := splits[cl.Name]
		if !ok {
			sp = &clusterSplit{}
			splits[cl.Name] = sp
			order = append(order, cl.Name)
		}
		if goiSet[row] {
			sp.goi = append(sp.goi, row)
		} else {
			sp.cand = append(sp.cand, row)
		}
	}

	partial := make([]float64, n)
	final := make([]float64, n)
	for i := range partial {
		partial[i] = math.NaN()
		final[i] = math.NaN()
	}

	for _, name := range order {
		sp := splits[name]
		if len(sp.goi) == 0 || len(sp.cand) == 0 {
			continue
		}
		goiCols := make([]int, len(sp.goi))
		for i, h := range sp.goi {
			col, ok := block.ColumnOf(h)
			if !ok {
				return nil, errors.New("rank: GOI row missing from correlation block")
			}
			goiCols[i] = col
		}

		members := append(append([]int(nil), sp.goi...), sp.cand...)
		for _, g := range members {
			sum := 0.0
			for _, col := range goiCols {
				sum += block.At(g, col)
			}
			partial[g] = sum
		}

		candVals := make([]float64, len(sp.cand))
		for i, c := range sp.cand {
			candVals[i] = partial[c] / float64(len(sp.goi))
		}
		mean, sd := stat.MeanStdDev(candVals, nil)
		for i, c := range sp.cand {
			final[c] = (candVals[i] - mean) / sd
		}
	}

	ranks := make([]int, 0, len(goiRows))
	for _, name := range order {
		sp := splits[name]
		if len(sp.cand) == 0 || len(sp.goi) < 2 {
			for range sp.goi {
				ranks = append(ranks, penaltyRank)
			}
			continue
		}
		for _, g := range sp.goi {
			gCol, ok := block.ColumnOf(g)
			if !ok {
				return nil, errors.New("rank: GOI row missing from correlation block")
			}

			group := append(append([]int(nil), sp.cand...), g)
			vals := make([]float64, len(group))
			for i, gene := range group {
				vals[i] = (partial[gene] - block.At(gene, gCol)) / float64(len(sp.goi)-1)
			}
			mean, sd := stat.MeanStdDev(vals, nil)

			working := append([]float64(nil), final...)
			for i, gene := range group {
				working[gene] = (vals[i] - mean) / sd
			}

			rankValue := working[g]
			count := 0
			for _, v := range working {
				if !math.IsNaN(v) && v > rankValue {
					count++
				}
			}
			ranks = append(ranks, count)
		}
	}

	sort.Ints(ranks)
	fractions := make([]float64, K)
	for i := range fractions {
		count := sort.SearchInts(ranks, i+1) // number of ranks <= i
		fractions[i] = float64(count) / float64(len(ranks))
	}
	ausr := floats.Sum(fractions) / K

	return &Result{Scores: final, AUSR: ausr, SelfRanks: ranks}, nil
}
