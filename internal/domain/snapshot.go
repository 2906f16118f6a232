// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"
)

// Snapshot is a plain, gob-friendly representation of a Store's entire
// ingested state, used by internal/persist to round-trip the "persisted
// domain state" opaque blob named in spec §6. Every field is exported so
// that encoding/gob, which refuses to transmit unexported state, can see
// it; Store itself keeps its fields private and is rebuilt from a
// Snapshot via Restore rather than gob-encoded directly.
type Snapshot struct {
	Collections []CollectionSnapshot
	Genes       []GeneSnapshot // arena order; index is the gene's GeneID
	Families    []FamilySnapshot
	Matrices    []MatrixSnapshot
	Clusterings []ClusteringSnapshot
	Mappings    [][2]int
}

// RuleSnapshot is a gob-friendly ParserRule: the original pattern text
// rather than a compiled *regexp.Regexp, which gob cannot transmit.
type RuleSnapshot struct {
	Pattern     string
	Replace     string
	SpliceGroup int
}

// CollectionSnapshot is a gob-friendly GeneCollection.
type CollectionSnapshot struct {
	Name    string
	Species string
	WebPage string
	Rules   []RuleSnapshot
}

// GeneSnapshot is a gob-friendly Gene. CollectionName identifies the
// owning collection by name rather than by CollectionID, since
// CollectionIDs are only stable within one Store instance.
type GeneSnapshot struct {
	Name           string
	CollectionName string
	Annotation     string
}

// FamilySnapshot is a gob-friendly OrthologFamily. Genes holds member
// GeneIDs (as plain ints, indices into Snapshot.Genes).
type FamilySnapshot struct {
	ExternalIDs []ExternalID
	Genes       []int
}

// MatrixSnapshot is a gob-friendly Matrix. Data is row-major, length
// Rows*Cols; Genes holds the row->GeneID bijection as plain ints.
type MatrixSnapshot struct {
	Name  string
	Rows  int
	Cols  int
	Data  []float64
	Genes []int
}

// ClusterSnapshot is a gob-friendly Cluster. The synthetic
// UnclusteredName bucket is never included: Restore rebuilds it via
// NewClustering exactly as ingest does.
type ClusterSnapshot struct {
	Name string
	Rows []int
}

// ClusteringSnapshot is a gob-friendly Clustering.
type ClusteringSnapshot struct {
	Name       string
	MatrixName string
	Clusters   []ClusterSnapshot
}

// Snapshot captures the store's entire state as a plain value tree
// suitable for gob encoding (spec §6, "Persisted domain state").
func (s *Store) Snapshot() Snapshot {
	var snap Snapshot

	for _, c := range s.CollectionsOrdered() {
		var rules []RuleSnapshot
		for _, r := range c.Rules() {
			rules = append(rules, RuleSnapshot{Pattern: r.Pattern(), Replace: r.Replace, SpliceGroup: r.SpliceGroup})
		}
		snap.Collections = append(snap.Collections, CollectionSnapshot{
			Name:    c.Name(),
			Species: c.Species(),
			WebPage: c.WebPageTemplate(),
			Rules:   rules,
		})
	}

	for _, g := range s.AllGenes() {
		annotation, _ := s.Description(g.ID())
		snap.Genes = append(snap.Genes, GeneSnapshot{
			Name:           g.Name(),
			CollectionName: s.Collection(g.Collection()).Name(),
			Annotation:     annotation,
		})
	}

	for _, fid := range s.IterFamilies() {
		f := s.Family(fid)
		genes := s.GenesOf(fid)
		ints := make([]int, len(genes))
		for i, g := range genes {
			ints[i] = int(g)
		}
		snap.Families = append(snap.Families, FamilySnapshot{
			ExternalIDs: f.ExternalIDs(),
			Genes:       ints,
		})
	}

	for _, m := range s.Matrices() {
		rows, cols := m.Dims()
		data := make([]float64, 0, rows*cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				data = append(data, m.Dense().At(r, c))
			}
		}
		genes := m.Genes()
		ints := make([]int, len(genes))
		for i, g := range genes {
			ints[i] = int(g)
		}
		snap.Matrices = append(snap.Matrices, MatrixSnapshot{
			Name: m.Name(), Rows: rows, Cols: cols, Data: data, Genes: ints,
		})
	}

	for _, v := range s.Clusterings() {
		var clusters []ClusterSnapshot
		for _, cl := range v.Clusters() {
			if cl.Name == UnclusteredName {
				continue
			}
			clusters = append(clusters, ClusterSnapshot{Name: cl.Name, Rows: append([]int(nil), cl.Rows...)})
		}
		snap.Clusterings = append(snap.Clusterings, ClusteringSnapshot{
			Name: v.Name(), MatrixName: v.MatrixName(), Clusters: clusters,
		})
	}

	for _, pair := range s.Mappings() {
		snap.Mappings = append(snap.Mappings, [2]int{int(pair[0]), int(pair[1])})
	}

	return snap
}

// Restore rebuilds a Store from a Snapshot produced by Store.Snapshot.
// Every entity is recreated directly into the arena in its original
// order rather than re-parsed through Resolve, so GeneIDs and FamilyIDs
// match the values the snapshot was taken with.
func Restore(snap Snapshot) (*Store, error) {
	s := NewStore()

	for _, cs := range snap.Collections {
		rules := make([]ParserRule, len(cs.Rules))
		for i, r := range cs.Rules {
			rules[i] = NewParserRule(r.Pattern, r.Replace, r.SpliceGroup)
		}
		if _, err := s.AddCollection(cs.Name, cs.Species, cs.WebPage, rules); err != nil {
			return nil, err
		}
	}

	for _, gs := range snap.Genes {
		c, ok := s.GetCollection(gs.CollectionName)
		if !ok {
			return nil, ErrNotFound
		}
		s.restoreGene(c, gs.Name, gs.Annotation)
	}

	for _, fs := range snap.Families {
		fid := s.newFamily()
		f := s.families[fid]
		f.externalIDs = append(f.externalIDs, fs.ExternalIDs...)
		for _, g := range fs.Genes {
			s.AddGeneToFamily(GeneID(g), fid)
		}
	}

	for _, ms := range snap.Matrices {
		genes := make([]GeneID, len(ms.Genes))
		for i, g := range ms.Genes {
			genes[i] = GeneID(g)
		}
		m := NewMatrix(ms.Name, mat.NewDense(ms.Rows, ms.Cols, ms.Data), genes)
		if err := s.AddMatrix(m); err != nil {
			return nil, err
		}
	}

	for _, cs := range snap.Clusterings {
		m, ok := s.Matrix(cs.MatrixName)
		if !ok {
			return nil, ErrNotFound
		}
		rows, _ := m.Dims()
		clusters := make([]*Cluster, len(cs.Clusters))
		for i, c := range cs.Clusters {
			clusters[i] = &Cluster{Name: c.Name, Rows: append([]int(nil), c.Rows...)}
		}
		v := NewClustering(cs.Name, cs.MatrixName, clusters, rows)
		if err := s.AddClustering(v); err != nil {
			return nil, err
		}
	}

	for _, pair := range snap.Mappings {
		if err := s.AddMapping(GeneID(pair[0]), GeneID(pair[1])); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// restoreGene creates a gene directly in the arena under collection c,
// bypassing Resolve's parser-rule matching (the snapshot already carries
// the canonical name). It mirrors getOrCreateGene's bookkeeping.
func (s *Store) restoreGene(c *GeneCollection, name, annotation string) GeneID {
	id := GeneID(len(s.genes))
	g := &Gene{id: id, name: name, collection: c.id, annotation: annotation}
	s.genes = append(s.genes, g)
	key := canonicalKey(name)
	c.nameToGene[key] = id
	c.geneOrder = append(c.geneOrder, id)
	s.membership.AddNode(simple.Node(geneNodeID(id)))
	return id
}
