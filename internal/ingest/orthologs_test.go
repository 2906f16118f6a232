// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import (
	"testing"

	"github.com/coexpnetviz/engine/internal/domain"
)

func TestReadOrthologsIgnoresSingletons(t *testing.T) {
	dir := t.TempDir()
	s := domain.NewStore()
	path := writeFile(t, dir, "o.tsv", "G1\ta\n")

	if err := ReadOrthologs(s, "src", path); err != nil {
		t.Fatalf("ReadOrthologs: %v", err)
	}
	if len(s.IterFamilies()) != 0 {
		t.Errorf("IterFamilies() = %v, want none (singleton line ignored)", s.IterFamilies())
	}
}

func TestReadOrthologsMergesOverlappingFamilies(t *testing.T) {
	dir := t.TempDir()
	s := domain.NewStore()
	// {a, b} and {b, c} on separate lines must collapse into one family.
	path := writeFile(t, dir, "o.tsv", "G1\ta\tb\nG2\tb\tc\n")

	if err := ReadOrthologs(s, "src", path); err != nil {
		t.Fatalf("ReadOrthologs: %v", err)
	}
	families := s.IterFamilies()
	if len(families) != 1 {
		t.Fatalf("IterFamilies() = %v, want exactly 1 merged family", families)
	}
	a := mustResolve(t, s, "a")
	b := mustResolve(t, s, "b")
	c := mustResolve(t, s, "c")
	fam := families[0]
	for _, g := range []domain.GeneID{a, b, c} {
		found := false
		for _, f := range s.FamiliesOf(g) {
			if f == fam {
				found = true
			}
		}
		if !found {
			t.Errorf("gene %v not a member of the merged family", g)
		}
	}
	if s.FamilySize(fam) != 3 {
		t.Errorf("FamilySize() = %d, want 3", s.FamilySize(fam))
	}
}

func TestReadOrthologsKeepsDisjointFamiliesSeparate(t *testing.T) {
	// Unrelated families on separate lines stay separate when they share
	// no genes.
	dir := t.TempDir()
	s := domain.NewStore()
	path := writeFile(t, dir, "o.tsv", "G1\ta\tb\nG2\tc\td\n")

	if err := ReadOrthologs(s, "src", path); err != nil {
		t.Fatalf("ReadOrthologs: %v", err)
	}
	if len(s.IterFamilies()) != 2 {
		t.Errorf("IterFamilies() = %v, want 2 independent families", s.IterFamilies())
	}
}
