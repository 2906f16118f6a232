// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rank

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/coexpnetviz/engine/internal/corr"
	"github.com/coexpnetviz/engine/internal/domain"
)

func TestNewZNormalizesEachClusterIndependently(t *testing.T) {
	// Scenario: 6 genes, GOI = {0, 3}, clustering {0,1,2}|{3,4,5} (spec §8
	// "split clusters"). With exactly one GOI member and two candidates per
	// cluster, z-normalisation by the sample (n-1) standard deviation
	// forces each cluster's two candidate scores to {-1/√2, +1/√2}
	// regardless of the underlying correlation magnitudes.
	data := mat.NewDense(6, 4, []float64{
		1, 2, 3, 4,
		2, 3, 4, 6,
		9, 5, 3, 1,
		1, 3, 2, 4,
		4, 2, 3, 1,
		2, 4, 1, 3.5,
	})
	goi := []int{0, 3}
	block, err := corr.New(data, goi, 1)
	if err != nil {
		t.Fatalf("corr.New: unexpected error: %v", err)
	}

	v := domain.NewClustering("k", "m", []*domain.Cluster{
		{Name: "A", Rows: []int{0, 1, 2}},
		{Name: "B", Rows: []int{3, 4, 5}},
	}, 6)

	res, err := New(v, block, goi)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}

	if !math.IsNaN(res.Scores[0]) || !math.IsNaN(res.Scores[3]) {
		t.Errorf("GOI entries should be NaN, got Scores[0]=%v Scores[3]=%v", res.Scores[0], res.Scores[3])
	}

	checkPair := func(i, j int) {
		a, b := res.Scores[i], res.Scores[j]
		if math.IsNaN(a) || math.IsNaN(b) {
			t.Errorf("candidate scores should be finite, got %v, %v", a, b)
			return
		}
		if math.Abs(a+b) > 1e-9 {
			t.Errorf("pair (%d,%d): scores %v, %v do not sum to 0", i, j, a, b)
		}
		if math.Abs(math.Abs(a)-1/math.Sqrt2) > 1e-9 {
			t.Errorf("pair (%d,%d): score %v is not ±1/√2", i, j, a)
		}
	}
	checkPair(1, 2)
	checkPair(4, 5)

	if res.AUSR < 0 || res.AUSR > 1 {
		t.Errorf("AUSR = %v, want within [0, 1]", res.AUSR)
	}
}

func TestNewLeaveOneOutPerfectRecoveryYieldsHighAUSR(t *testing.T) {
	// A GOI gene whose candidate is an exact linear copy of every other GOI
	// member's profile should rank at (or near) the very top under
	// leave-one-out self-evaluation.
	n := 8
	data := mat.NewDense(n, 5, nil)
	base := []float64{1, 2, 3, 4, 5}
	for i := 0; i < n; i++ {
		row := make([]float64, 5)
		for j, v := range base {
			row[j] = v + float64(i)*0.01
		}
		data.SetRow(i, row)
	}
	// Perturb two rows so they are not perfectly co-linear with everything,
	// keeping the GOI's mutual correlation near 1.
	data.Set(6, 0, 9)
	data.Set(7, 2, -3)

	goi := []int{0, 1, 2, 3, 4}
	block, err := corr.New(data, goi, 1)
	if err != nil {
		t.Fatalf("corr.New: unexpected error: %v", err)
	}

	v := domain.NewClustering("k", "m", []*domain.Cluster{
		{Name: "all", Rows: []int{0, 1, 2, 3, 4, 5, 6, 7}},
	}, n)

	res, err := New(v, block, goi)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if res.AUSR < 0 || res.AUSR > 1 {
		t.Errorf("AUSR = %v, want within [0, 1]", res.AUSR)
	}
	if res.AUSR < 0.9 {
		t.Errorf("AUSR = %v, want close to 1 for near-identical GOI profiles", res.AUSR)
	}
}

func TestNewPenalizesUndersizedGOICluster(t *testing.T) {
	// "solo" has a GOI member but no candidates; "rest" has exactly one
	// GOI member (|G_κ| < 2) alongside two candidates. Neither qualifies
	// for leave-one-out self-evaluation (division by |G_κ|-1 would be a
	// division by zero), so both GOI members must fall back to the
	// penalty rank rather than panicking or producing a division error.
	// Step 2's ordinary finalisation still runs for "rest"'s candidates.
	data := mat.NewDense(4, 3, []float64{
		1, 2, 3,
		3, 1, 2,
		2, 3, 1,
		1, 1, 2,
	})
	goi := []int{0, 1}
	block, err := corr.New(data, goi, 1)
	if err != nil {
		t.Fatalf("corr.New: unexpected error: %v", err)
	}
	v := domain.NewClustering("k", "m", []*domain.Cluster{
		{Name: "solo", Rows: []int{0}},
		{Name: "rest", Rows: []int{1, 2, 3}},
	}, 4)

	res, err := New(v, block, goi)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if !math.IsNaN(res.Scores[0]) {
		t.Errorf("GOI-only cluster member should score NaN, got %v", res.Scores[0])
	}
	if !math.IsNaN(res.Scores[1]) {
		t.Errorf("GOI member of undersized cluster should score NaN, got %v", res.Scores[1])
	}
	if math.IsNaN(res.Scores[2]) || math.IsNaN(res.Scores[3]) {
		t.Errorf("ordinary candidates of a cluster with 1 GOI member should still be finalised, got %v, %v", res.Scores[2], res.Scores[3])
	}
	if res.AUSR < 0 || res.AUSR > 1 {
		t.Errorf("AUSR = %v, want within [0, 1]", res.AUSR)
	}
}
