// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import "strings"

// GeneID is a stable, opaque handle to a Gene held by a Store. A GeneID
// remains valid for the lifetime of the Store that produced it.
type GeneID int

// invalidGeneID marks an unset handle.
const invalidGeneID GeneID = -1

// Gene is a canonical, case-insensitive identifier of a coding unit,
// unique within its owning GeneCollection. Genes are created on first
// reference during ingest and are never destroyed.
type Gene struct {
	id         GeneID
	name       string // canonical name, as produced by the owning collection's parser rules
	collection CollectionID
	annotation string // free-text functional annotation, optional
}

// ID returns the gene's stable handle.
func (g *Gene) ID() GeneID { return g.id }

// Name returns the gene's canonical name.
func (g *Gene) Name() string { return g.name }

// Collection returns the handle of the gene collection that owns this gene.
func (g *Gene) Collection() CollectionID { return g.collection }

// Annotation returns the gene's free-text functional annotation, or the
// empty string if none was set.
func (g *Gene) Annotation() string { return g.annotation }

// canonicalKey returns the case-folded form of name used for lookups
// within a gene collection's namespace.
func canonicalKey(name string) string { return strings.ToLower(name) }
