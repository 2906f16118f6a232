// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coexpnetviz/engine/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestReadMatrix(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "m.tsv", "gene\tc1\tc2\tc3\n"+
		"a\t1\t2\t3\n"+
		"\t9\t9\t9\n"+ // empty gene name, skipped with warning
		"b\t4\t5\t6\n")

	s := domain.NewStore()
	m, err := ReadMatrix(s, "m", path)
	if err != nil {
		t.Fatalf("ReadMatrix: %v", err)
	}
	rows, cols := m.Dims()
	if rows != 2 || cols != 3 {
		t.Fatalf("Dims() = (%d, %d), want (2, 3)", rows, cols)
	}
	if got, ok := m.Row(mustResolve(t, s, "a")); !ok || got != 0 {
		t.Errorf("row of a = (%d, %v), want (0, true)", got, ok)
	}
	if got, ok := m.Row(mustResolve(t, s, "b")); !ok || got != 1 {
		t.Errorf("row of b = (%d, %v), want (1, true)", got, ok)
	}
}

func mustResolve(t *testing.T, s *domain.Store, name string) domain.GeneID {
	t.Helper()
	g, err := s.Resolve(name)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", name, err)
	}
	return g.ID()
}

func TestReadMatrixRejectsDuplicateGeneName(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "m.tsv", "gene\tc1\na\t1\na\t2\n")

	s := domain.NewStore()
	if _, err := ReadMatrix(s, "m", path); err == nil {
		t.Fatal("ReadMatrix: want error for duplicate gene name")
	}
}

func TestReadMatrixRejectsMismatchedColumnCount(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "m.tsv", "gene\tc1\tc2\na\t1\n")

	s := domain.NewStore()
	if _, err := ReadMatrix(s, "m", path); err == nil {
		t.Fatal("ReadMatrix: want error for mismatched column count")
	}
}

func TestReadMatrixRejectsBadHeader(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "m.tsv", "notgene\tc1\na\t1\n")

	s := domain.NewStore()
	if _, err := ReadMatrix(s, "m", path); err == nil {
		t.Fatal("ReadMatrix: want error for bad header")
	}
}
