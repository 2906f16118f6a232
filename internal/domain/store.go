// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"log"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// UnknownCollectionName is the display name of the store's distinguished
// "unknown" gene collection (spec §3).
const UnknownCollectionName = "Unknown"

// Store owns every Gene, GeneCollection, OrthologFamily, Matrix and
// Clustering created during a single batch run's ingest phase (spec §3,
// §4.1). It is mutated only by the ingest operations below (and by family
// merges they trigger); once ingest completes it is treated as immutable
// for the remainder of the run (spec §5).
//
// The gene<->family back-reference bijection (spec §4.1 invariant i) is
// maintained as a bipartite graph: gene handles and family handles are
// mapped onto disjoint integer id spaces (even ids for genes, odd ids for
// families) and stored as nodes of a single undirected graph, with an edge
// for every membership. This gives merge/erase a graph rewiring operation
// instead of a hand-maintained set kept in sync by hand.
type Store struct {
	collections     []*GeneCollection // insertion order, excludes the unknown collection
	collectionByKey map[string]CollectionID
	unknown         CollectionID

	genes []*Gene // arena indexed by GeneID

	families    []*OrthologFamily // arena indexed by FamilyID; erased/merged-away entries have erased==true
	familyOrder []FamilyID        // insertion order of still-live families

	membership *simple.UndirectedGraph

	matrices    map[string]*Matrix
	matrixOrder []string

	clusterings     map[string]*Clustering // key: lower(matrixName)+"\x00"+lower(clusteringName)
	clusteringOrder []string               // insertion order, parallel to the clusterings map's keys

	descriptions map[GeneID]string

	// mappings holds "highly similar" undirected gene pairs from the
	// gene-mappings file (SPEC_FULL §3 EXPANSION); tracked but not used by
	// MORPH or CoExpr scoring.
	mappings [][2]GeneID
}

// NewStore returns an empty Store with its distinguished "unknown" gene
// collection registered.
func NewStore() *Store {
	s := &Store{
		collectionByKey: make(map[string]CollectionID),
		membership:      simple.NewUndirectedGraph(),
		matrices:        make(map[string]*Matrix),
		clusterings:     make(map[string]*Clustering),
		descriptions:    make(map[GeneID]string),
	}
	unknown := &GeneCollection{
		name:       UnknownCollectionName,
		isUnknown:  true,
		rules:      []ParserRule{NewParserRule(`^(.+?)$`, "$1", 0)},
		nameToGene: make(map[string]GeneID),
	}
	s.unknown = s.registerCollection(unknown)
	return s
}

func (s *Store) registerCollection(c *GeneCollection) CollectionID {
	id := CollectionID(len(s.collections) + 1) // +1 so the zero value is never valid
	c.id = id
	s.collections = append(s.collections, c)
	return id
}

func collectionKey(name string) string { return canonicalKey(name) }

// AddCollection registers a new gene collection with the given rules. It
// returns ErrDuplicateCollection if name (case-insensitively) is already
// registered, and ErrEmptyParserRules if rules is empty (spec §3, §7
// kind 1).
func (s *Store) AddCollection(name, species, geneWebPage string, rules []ParserRule) (CollectionID, error) {
	key := collectionKey(name)
	if key == collectionKey(UnknownCollectionName) {
		return invalidCollectionID, ErrDuplicateCollection
	}
	if _, ok := s.collectionByKey[key]; ok {
		return invalidCollectionID, ErrDuplicateCollection
	}
	if len(rules) == 0 {
		return invalidCollectionID, ErrEmptyParserRules
	}
	c := &GeneCollection{
		name:       name,
		species:    species,
		webPage:    geneWebPage,
		rules:      append([]ParserRule(nil), rules...),
		nameToGene: make(map[string]GeneID),
	}
	id := s.registerCollection(c)
	s.collectionByKey[key] = id
	return id, nil
}

// GetCollection returns the gene collection registered under name
// (case-insensitive), or (nil, false).
func (s *Store) GetCollection(name string) (*GeneCollection, bool) {
	id, ok := s.collectionByKey[collectionKey(name)]
	if !ok {
		if collectionKey(name) == collectionKey(UnknownCollectionName) {
			return s.collections[s.unknown-1], true
		}
		return nil, false
	}
	return s.collections[id-1], true
}

// Collection returns the collection for id.
func (s *Store) Collection(id CollectionID) *GeneCollection { return s.collections[id-1] }

// Gene returns the gene for id.
func (s *Store) Gene(id GeneID) *Gene { return s.genes[id] }

// Resolve parses raw through the registered collections' parser rules in
// insertion order, falling back to the distinguished "unknown" collection
// if none match, and returns the resulting (possibly newly created) gene
// (spec §4.1).
//
// It returns ErrUnsupportedVariant if the matching rule extracts a
// splice-variant id other than 1.
func (s *Store) Resolve(raw string) (*Gene, error) {
	for _, c := range s.collections {
		if c.isUnknown {
			continue
		}
		name, variant, ok := c.parse(raw)
		if !ok {
			continue
		}
		if variant != 0 && variant != 1 {
			return nil, ErrUnsupportedVariant
		}
		return s.getOrCreateGene(c, name), nil
	}

	unknown := s.collections[s.unknown-1]
	name, variant, ok := unknown.parse(raw)
	if !ok {
		return nil, ErrNotFound
	}
	if variant != 0 && variant != 1 {
		return nil, ErrUnsupportedVariant
	}
	if _, exists := unknown.nameToGene[canonicalKey(name)]; !exists {
		log.Printf("warning: could not match gene %q to a gene collection, adding to unknown gene collection", raw)
	}
	return s.getOrCreateGene(unknown, name), nil
}

func (s *Store) getOrCreateGene(c *GeneCollection, name string) *Gene {
	key := canonicalKey(name)
	if id, ok := c.nameToGene[key]; ok {
		return s.genes[id]
	}
	id := GeneID(len(s.genes))
	g := &Gene{id: id, name: name, collection: c.id}
	s.genes = append(s.genes, g)
	c.nameToGene[key] = id
	c.geneOrder = append(c.geneOrder, id)
	s.membership.AddNode(simple.Node(geneNodeID(id)))
	return g
}

// AllGenes returns every gene in the store's arena, in creation order
// (used by internal/persist to snapshot the full gene arena regardless of
// owning collection).
func (s *Store) AllGenes() []*Gene {
	out := make([]*Gene, len(s.genes))
	copy(out, s.genes)
	return out
}

// CollectionsOrdered returns every registered gene collection excluding
// the distinguished "unknown" collection, in registration order.
func (s *Store) CollectionsOrdered() []*GeneCollection {
	out := make([]*GeneCollection, 0, len(s.collections))
	for _, c := range s.collections {
		if !c.isUnknown {
			out = append(out, c)
		}
	}
	return out
}

// IterGenes returns the genes of collection in insertion order.
func (s *Store) IterGenes(collection CollectionID) []*Gene {
	c := s.collections[collection-1]
	out := make([]*Gene, len(c.geneOrder))
	for i, id := range c.geneOrder {
		out[i] = s.genes[id]
	}
	return out
}

// SetAnnotation sets gene's free-text functional annotation. A later call
// for the same gene overwrites the previous value and is logged as a
// warning by ingest (spec §3, "duplicate description").
func (s *Store) SetAnnotation(gene GeneID, annotation string) {
	s.genes[gene].annotation = annotation
}

// --- Ortholog families -----------------------------------------------------

func geneNodeID(g GeneID) int64   { return int64(g) * 2 }
func familyNodeID(f FamilyID) int64 { return int64(f)*2 + 1 }

// AddFamily always creates a new, empty family carrying a single external
// id (source, id); callers that need deduplication by external id must do
// so themselves (spec §4.1). Use AddSingletonFamily for an
// externally-id-less synthetic family.
func (s *Store) AddFamily(source, id string) FamilyID {
	fid := s.newFamily()
	if source != "" || id != "" {
		s.families[fid].externalIDs = append(s.families[fid].externalIDs, ExternalID{Source: source, ID: id})
	}
	return fid
}

// AddSingletonFamily creates a new, empty family with no external ids, for
// a gene untouched by any ortholog file (spec §9, "Singleton families for
// isolated genes").
func (s *Store) AddSingletonFamily() FamilyID { return s.newFamily() }

func (s *Store) newFamily() FamilyID {
	fid := FamilyID(len(s.families))
	s.families = append(s.families, &OrthologFamily{id: fid})
	s.familyOrder = append(s.familyOrder, fid)
	s.membership.AddNode(simple.Node(familyNodeID(fid)))
	return fid
}

// Family returns the family for id. Panics if id refers to an erased or
// merged-away family; callers must not retain handles past a merge/erase.
func (s *Store) Family(id FamilyID) *OrthologFamily {
	f := s.families[id]
	if f.erased {
		panic("domain: use of erased family handle")
	}
	return f
}

// AddGeneToFamily adds gene as a member of family, if not already a
// member.
func (s *Store) AddGeneToFamily(gene GeneID, family FamilyID) {
	s.membership.SetEdge(simple.Edge{F: simple.Node(geneNodeID(gene)), T: simple.Node(familyNodeID(family))})
}

// FamiliesOf returns the handles of every family containing gene, in
// ascending FamilyID order.
func (s *Store) FamiliesOf(gene GeneID) []FamilyID {
	it := s.membership.From(geneNodeID(gene))
	var out []FamilyID
	for it.Next() {
		out = append(out, FamilyID(it.Node().ID()/2))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GenesOf returns the handles of every gene in family, in ascending GeneID
// order.
func (s *Store) GenesOf(family FamilyID) []GeneID {
	it := s.membership.From(familyNodeID(family))
	var out []GeneID
	for it.Next() {
		out = append(out, GeneID(it.Node().ID()/2))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FamilySize reports the number of member genes of family, used by the
// CoExpr orphan-family filter (spec §4.4).
func (s *Store) FamilySize(family FamilyID) int {
	return s.membership.From(familyNodeID(family)).Len()
}

// MergeFamily destructively empties b into a: every gene and external id
// of b moves to a, every back-reference to b is repointed to a, and b is
// removed from the store (spec §4.1). To keep amortised cost linear in
// the data moved, the smaller of the two families' contents is always the
// one walked and re-inserted into the larger.
//
// After MergeFamily returns, b is no longer a valid handle.
func (s *Store) MergeFamily(a, b FamilyID) {
	if a == b {
		return
	}
	fa, fb := s.families[a], s.families[b]
	if fa.erased || fb.erased {
		panic("domain: merge of erased family handle")
	}

	genesA := s.GenesOf(a)
	genesB := s.GenesOf(b)
	if len(genesA) < len(genesB) {
		// Swap roles so that the larger family's contents stay put and we
		// only rewire the smaller side's edges (spec §4.1: "swap
		// containers by size before inserting").
		a, b = b, a
		fa, fb = fb, fa
		genesB = genesA
	}

	for _, g := range genesB {
		s.membership.RemoveEdge(geneNodeID(g), familyNodeID(b))
		s.membership.SetEdge(simple.Edge{F: simple.Node(geneNodeID(g)), T: simple.Node(familyNodeID(a))})
	}
	fa.externalIDs = append(fa.externalIDs, fb.externalIDs...)

	s.eraseFamilyUnchecked(b)
}

// EraseFamily removes family from the store. It returns ErrFamilyNotEmpty
// if the family still has member genes (spec §4.1).
func (s *Store) EraseFamily(family FamilyID) error {
	if s.FamilySize(family) != 0 {
		return ErrFamilyNotEmpty
	}
	s.eraseFamilyUnchecked(family)
	return nil
}

func (s *Store) eraseFamilyUnchecked(family FamilyID) {
	s.families[family].erased = true
	s.membership.RemoveNode(familyNodeID(family))
	for i, id := range s.familyOrder {
		if id == family {
			s.familyOrder = append(s.familyOrder[:i], s.familyOrder[i+1:]...)
			break
		}
	}
}

// IterFamilies returns the handles of every live family, in the order they
// were created (spec §5, "insertion order for families").
func (s *Store) IterFamilies() []FamilyID {
	out := make([]FamilyID, len(s.familyOrder))
	copy(out, s.familyOrder)
	return out
}

var _ = graph.Node(simple.Node(0)) // simple.Node implements graph.Node

// --- Expression matrices -----------------------------------------------------

// AddMatrix registers a new named expression matrix. It returns
// ErrDuplicateMatrixName if name is already registered, and
// ErrDuplicateGeneInMatrix if any of m's genes already appears in another
// matrix previously registered on this store (spec §3: "same gene never
// appears in two matrices of the same run").
func (s *Store) AddMatrix(m *Matrix) error {
	key := canonicalKey(m.Name())
	if _, ok := s.matrices[key]; ok {
		return ErrDuplicateMatrixName
	}
	for _, g := range m.genes {
		for _, other := range s.matrixOrder {
			if s.matrices[other].HasGene(g) {
				return ErrDuplicateGeneInMatrix
			}
		}
	}
	s.matrices[key] = m
	s.matrixOrder = append(s.matrixOrder, key)
	return nil
}

// Matrix returns the matrix registered under name (case-insensitive), or
// (nil, false).
func (s *Store) Matrix(name string) (*Matrix, bool) {
	m, ok := s.matrices[canonicalKey(name)]
	return m, ok
}

// Matrices returns every registered matrix, in registration order.
func (s *Store) Matrices() []*Matrix {
	out := make([]*Matrix, len(s.matrixOrder))
	for i, key := range s.matrixOrder {
		out[i] = s.matrices[key]
	}
	return out
}

// MatrixContaining returns the unique matrix containing gene, or
// (nil, false) if gene is present in none (spec §4.4, "bait assignment").
func (s *Store) MatrixContaining(gene GeneID) (*Matrix, bool) {
	for _, key := range s.matrixOrder {
		if m := s.matrices[key]; m.HasGene(gene) {
			return m, true
		}
	}
	return nil, false
}

// --- Clusterings -----------------------------------------------------

func clusteringKey(matrixName, name string) string {
	return canonicalKey(matrixName) + "\x00" + canonicalKey(name)
}

// AddClustering registers a clustering. It returns ErrDuplicateClusteringName
// if a clustering of the same name already exists for the same matrix.
func (s *Store) AddClustering(c *Clustering) error {
	key := clusteringKey(c.MatrixName(), c.Name())
	if _, ok := s.clusterings[key]; ok {
		return ErrDuplicateClusteringName
	}
	s.clusterings[key] = c
	s.clusteringOrder = append(s.clusteringOrder, key)
	return nil
}

// Clustering returns the clustering registered under (matrixName, name),
// or (nil, false).
func (s *Store) Clustering(matrixName, name string) (*Clustering, bool) {
	c, ok := s.clusterings[clusteringKey(matrixName, name)]
	return c, ok
}

// Clusterings returns every registered clustering, in registration order.
func (s *Store) Clusterings() []*Clustering {
	out := make([]*Clustering, len(s.clusteringOrder))
	for i, key := range s.clusteringOrder {
		out[i] = s.clusterings[key]
	}
	return out
}

// ClusteringsOf returns the clusterings registered against matrixName, in
// registration order (used by the MORPH driver to enumerate every
// clustering of a matrix named in a job, spec §4 C8).
func (s *Store) ClusteringsOf(matrixName string) []*Clustering {
	var out []*Clustering
	for _, c := range s.Clusterings() {
		if canonicalKey(c.MatrixName()) == canonicalKey(matrixName) {
			out = append(out, c)
		}
	}
	return out
}

// --- Gene mappings (SPEC_FULL §3 EXPANSION) ---------------------------------

// AddMapping records an undirected "highly similar" relationship between
// two genes discovered in the gene-mappings file. It returns
// ErrSameCollectionMapping if a and b belong to the same gene collection
// (spec §6, "Gene-mappings file").
func (s *Store) AddMapping(a, b GeneID) error {
	if s.genes[a].collection == s.genes[b].collection {
		return ErrSameCollectionMapping
	}
	s.mappings = append(s.mappings, [2]GeneID{a, b})
	return nil
}

// Mappings returns the recorded highly-similar gene pairs, in insertion
// order.
func (s *Store) Mappings() [][2]GeneID {
	out := make([][2]GeneID, len(s.mappings))
	copy(out, s.mappings)
	return out
}

// Description returns gene's free-text annotation, if any previously set
// via SetAnnotation, or ("", false).
func (s *Store) Description(gene GeneID) (string, bool) {
	a := s.genes[gene].annotation
	return a, a != ""
}
