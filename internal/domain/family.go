// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import "sort"

// FamilyID is a stable, opaque handle to an OrthologFamily held by a Store.
// A FamilyID becomes invalid once the family is merged away or erased.
type FamilyID int

const invalidFamilyID FamilyID = -1

// ExternalID is an external identifier giving a family's provenance, e.g.
// an ortholog-group id from a particular clustering source.
type ExternalID struct {
	Source string
	ID     string
}

// OrthologFamily is an unordered set of 1..N genes presumed homologous,
// plus a set of external identifiers giving its provenance (spec §3). The
// family holds no gene list of its own: membership lives in the owning
// Store's membership graph, which is the single source of truth for the
// gene<->family bijection (spec §4.1 invariant i).
type OrthologFamily struct {
	id          FamilyID
	externalIDs []ExternalID
	erased      bool
}

// ID returns the family's stable handle. Once erased or merged away, the
// handle is no longer valid for lookups on the owning Store.
func (f *OrthologFamily) ID() FamilyID { return f.id }

// ExternalIDs returns the family's external identifiers in insertion
// order.
func (f *OrthologFamily) ExternalIDs() []ExternalID {
	out := make([]ExternalID, len(f.externalIDs))
	copy(out, f.externalIDs)
	return out
}

// ExternalIDsBySource groups ExternalIDs by source, with ids sorted within
// each source and sources sorted for deterministic output (used by the
// Cytoscape "families" column, spec SPEC_FULL §3 EXPANSION).
func (f *OrthologFamily) ExternalIDsBySource() (sources []string, idsBySource map[string][]string) {
	idsBySource = make(map[string][]string)
	for _, eid := range f.externalIDs {
		idsBySource[eid.Source] = append(idsBySource[eid.Source], eid.ID)
	}
	sources = make([]string, 0, len(idsBySource))
	for src, ids := range idsBySource {
		sort.Strings(ids)
		sources = append(sources, src)
	}
	sort.Strings(sources)
	return sources, idsBySource
}
