// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package persist

import (
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/coexpnetviz/engine/internal/domain"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := domain.NewStore()
	if _, err := s.AddCollection("arabidopsis", "Arabidopsis thaliana", "", []domain.ParserRule{
		domain.NewParserRule(`at(\d)g(\d+)(?:\.(\d+))?`, "at$1g$2", 3),
	}); err != nil {
		t.Fatalf("AddCollection: %v", err)
	}

	g1, err := s.Resolve("at1g00010")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	g2, err := s.Resolve("at1g00020")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	s.SetAnnotation(g1.ID(), "transcription factor")

	fam := s.AddFamily("plaza", "HOM001")
	s.AddGeneToFamily(g1.ID(), fam)
	s.AddGeneToFamily(g2.ID(), fam)

	m := domain.NewMatrix("leaf", mat.NewDense(2, 2, []float64{1, 2, 3, 4}), []domain.GeneID{g1.ID(), g2.ID()})
	if err := s.AddMatrix(m); err != nil {
		t.Fatalf("AddMatrix: %v", err)
	}

	path := filepath.Join(t.TempDir(), "db.blob")
	if err := Save(path, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	rg1, err := restored.Resolve("at1g00010")
	if err != nil {
		t.Fatalf("Resolve on restored store: %v", err)
	}
	if ann, ok := restored.Description(rg1.ID()); !ok || ann != "transcription factor" {
		t.Errorf("restored annotation = (%q, %v), want (\"transcription factor\", true)", ann, ok)
	}

	rm, ok := restored.Matrix("leaf")
	if !ok {
		t.Fatal("restored matrix leaf not found")
	}
	if rm.Dense().At(0, 1) != 2 {
		t.Errorf("restored matrix data mismatch at (0,1): got %v, want 2", rm.Dense().At(0, 1))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.blob")); err == nil {
		t.Fatal("Load: want error for missing file")
	}
}
