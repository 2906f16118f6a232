// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package write

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/coexpnetviz/engine/internal/domain"
	"github.com/coexpnetviz/engine/internal/rank"
)

func buildRankingFixture(t *testing.T) (*domain.Store, *domain.Matrix, *rank.Result) {
	t.Helper()
	s := domain.NewStore()
	names := []string{"goi1", "cand1", "cand2"}
	genes := make([]domain.GeneID, len(names))
	for i, n := range names {
		g, err := s.Resolve(n)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", n, err)
		}
		genes[i] = g.ID()
		s.SetAnnotation(g.ID(), "annotation for "+n)
	}

	m := domain.NewMatrix("leaf", mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}), genes)
	if err := s.AddMatrix(m); err != nil {
		t.Fatalf("AddMatrix: %v", err)
	}

	res := &rank.Result{
		Scores: []float64{math.NaN(), 1.5, 2.5},
		AUSR:   0.9,
	}
	return s, m, res
}

func TestBuildRankingSortsDescendingAndTrimsTopK(t *testing.T) {
	s, m, res := buildRankingFixture(t)
	ranking := BuildRanking(s, m, "k2", res, nil, nil, 0.8, 1)

	if len(ranking.Candidates) != 1 {
		t.Fatalf("Candidates = %d, want 1 (topK)", len(ranking.Candidates))
	}
	if ranking.Candidates[0].Gene != "cand2" || ranking.Candidates[0].Rank != 1 {
		t.Errorf("top candidate = %+v, want cand2 rank 1", ranking.Candidates[0])
	}
}

func TestWriteTextIncludesHeaderFields(t *testing.T) {
	s, m, res := buildRankingFixture(t)
	ranking := BuildRanking(s, m, "k2", res, nil, []string{"missing1"}, 0.8, 10)

	var b strings.Builder
	if err := WriteText(&b, ranking); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "Best AUSR: 0.90") {
		t.Errorf("missing Best AUSR line:\n%s", out)
	}
	if !strings.Contains(out, "Genes of interest missing in data set: missing1") {
		t.Errorf("missing GOI-missing line:\n%s", out)
	}
}

func TestWriteYAMLNestsUnderRankingKey(t *testing.T) {
	s, m, res := buildRankingFixture(t)
	ranking := BuildRanking(s, m, "k2", res, nil, nil, 0.8, 10)

	var b strings.Builder
	if err := WriteYAML(&b, ranking); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	if !strings.HasPrefix(b.String(), "ranking:") {
		t.Errorf("YAML output = %q, want to start with 'ranking:'", b.String())
	}
}
