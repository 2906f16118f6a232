// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import (
	"testing"

	"github.com/coexpnetviz/engine/internal/domain"
)

func TestReadDescriptionsLastOneWins(t *testing.T) {
	dir := t.TempDir()
	s := domain.NewStore()
	path := writeFile(t, dir, "d.tsv", "a\tfirst\na\tsecond\n")

	if err := ReadDescriptions(s, path); err != nil {
		t.Fatalf("ReadDescriptions: %v", err)
	}
	g := mustResolve(t, s, "a")
	got, ok := s.Description(g)
	if !ok || got != "second" {
		t.Errorf("Description() = (%q, %v), want (\"second\", true)", got, ok)
	}
}

func TestReadDescriptionsIgnoresEmptyDescription(t *testing.T) {
	dir := t.TempDir()
	s := domain.NewStore()
	path := writeFile(t, dir, "d.tsv", "a\tkeep\na\t\n")

	if err := ReadDescriptions(s, path); err != nil {
		t.Fatalf("ReadDescriptions: %v", err)
	}
	g := mustResolve(t, s, "a")
	got, ok := s.Description(g)
	if !ok || got != "keep" {
		t.Errorf("Description() = (%q, %v), want (\"keep\", true)", got, ok)
	}
}
