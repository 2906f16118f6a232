// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package write

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/coexpnetviz/engine/internal/coexpr"
	"github.com/coexpnetviz/engine/internal/domain"
)

// baitColour is the fixed node colour assigned to every bait, matching
// the original Cytoscape writer's hard-coded white.
const baitColour = "#FFFFFF"

func nodeIDString(id int64) string { return strconv.FormatInt(id, 10) }

func formatFamilies(sources []string, idsBySource map[string][]string) string {
	parts := make([]string, len(sources))
	for i, src := range sources {
		parts[i] = fmt.Sprintf("From %s: %s", src, strings.Join(idsBySource[src], ", "))
	}
	return strings.Join(parts, ". ")
}

// geneFamiliesColumn formats the node.attr "families" column for a bait:
// external ids grouped by source, unioned across every family the bait
// belongs to (generalised from the original's single-family assumption,
// matching the many-to-many family model used throughout this repo).
func geneFamiliesColumn(store *domain.Store, gene domain.GeneID) string {
	idsBySource := make(map[string][]string)
	for _, fid := range store.FamiliesOf(gene) {
		_, bySource := store.Family(fid).ExternalIDsBySource()
		for src, ids := range bySource {
			idsBySource[src] = append(idsBySource[src], ids...)
		}
	}
	sources := make([]string, 0, len(idsBySource))
	for src, ids := range idsBySource {
		sort.Strings(ids)
		sources = append(sources, src)
	}
	sort.Strings(sources)
	return formatFamilies(sources, idsBySource)
}

// familyColumn formats the node.attr "families" column for a target
// family node: just that one family's external ids by source.
func familyColumn(store *domain.Store, fid domain.FamilyID) string {
	return formatFamilies(store.Family(fid).ExternalIDsBySource())
}

// WriteNetwork renders result's assembled network to the four Cytoscape
// files (spec §6, "CoExpr job YAML" outputs) inside dir.
func WriteNetwork(dir string, store *domain.Store, result *coexpr.Result, net *coexpr.Network) error {
	if err := writeSIF(dir, net, result); err != nil {
		return err
	}
	if err := writeNodeAttr(dir, store, net, result); err != nil {
		return err
	}
	if err := writeEdgeAttr(dir, net, result); err != nil {
		return err
	}
	if err := writeGenesYAML(dir, store, net, result); err != nil {
		return err
	}
	return nil
}

func writeSIF(dir string, net *coexpr.Network, result *coexpr.Result) error {
	var b strings.Builder
	for _, neigh := range result.Neighbours {
		if len(neigh.BaitOrder) == 0 {
			continue
		}
		targetID, _ := net.FamilyNodeID(neigh.Family)
		b.WriteString(nodeIDString(targetID))
		b.WriteString("\tcor")
		for _, bait := range neigh.BaitOrder {
			baitID, _ := net.BaitNodeID(bait)
			b.WriteString("\t")
			b.WriteString(nodeIDString(baitID))
		}
		b.WriteString("\n")
	}
	for _, e := range result.Orthologs {
		fromID, _ := net.BaitNodeID(e.From)
		toID, _ := net.BaitNodeID(e.To)
		fmt.Fprintf(&b, "%s\thom\t%s\n", nodeIDString(fromID), nodeIDString(toID))
	}
	return writeFile(filepath.Join(dir, "network.sif"), b.String())
}

func writeNodeAttr(dir string, store *domain.Store, net *coexpr.Network, result *coexpr.Result) error {
	var b strings.Builder
	b.WriteString("node_id\tfamilies\tgenes\tspecies\tcolor\n")

	for _, bait := range result.Baits {
		id, _ := net.BaitNodeID(bait)
		species := store.Collection(store.Gene(bait).Collection()).Species()
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%s\n",
			nodeIDString(id), geneFamiliesColumn(store, bait), store.Gene(bait).Name(), species, baitColour)
	}

	for _, neigh := range result.Neighbours {
		id, _ := net.FamilyNodeID(neigh.Family)
		names := make([]string, len(neigh.CorrelatingGenes))
		for i, g := range neigh.CorrelatingGenes {
			names[i] = store.Gene(g).Name()
		}
		colour := coexpr.Colour(neigh.BaitGroupID(store))
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t#%02x%02x%02x\n",
			nodeIDString(id), familyColumn(store, neigh.Family), strings.Join(names, " "), "", colour[0], colour[1], colour[2])
	}

	return writeFile(filepath.Join(dir, "network.node.attr"), b.String())
}

func writeEdgeAttr(dir string, net *coexpr.Network, result *coexpr.Result) error {
	var b strings.Builder
	b.WriteString("edge\tr_value\n")
	for _, neigh := range result.Neighbours {
		targetID, _ := net.FamilyNodeID(neigh.Family)
		for _, bait := range neigh.BaitOrder {
			baitID, _ := net.BaitNodeID(bait)
			corrVal, _ := neigh.MaxCorrelation(bait)
			fmt.Fprintf(&b, "%s (cor) %s\t%v\n", nodeIDString(targetID), nodeIDString(baitID), corrVal)
		}
	}
	for _, e := range result.Orthologs {
		fromID, _ := net.BaitNodeID(e.From)
		toID, _ := net.BaitNodeID(e.To)
		fmt.Fprintf(&b, "%s (hom) %s\tNA\n", nodeIDString(fromID), nodeIDString(toID))
	}
	return writeFile(filepath.Join(dir, "network.edge.attr"), b.String())
}

// baitRef is one bait correlation entry in network_genes.yaml.
type baitRef struct {
	NodeID string  `yaml:"node_id"`
	RValue float64 `yaml:"r_value"`
}

// geneNode is one entry of network_genes.yaml's "genes" list.
type geneNode struct {
	ID        string    `yaml:"id"`
	IsBait    bool      `yaml:"is_bait"`
	Families  []string  `yaml:"families,omitempty"`
	Orthologs []string  `yaml:"orthologs,omitempty"`
	Baits     []baitRef `yaml:"baits,omitempty"`
}

func writeGenesYAML(dir string, store *domain.Store, net *coexpr.Network, result *coexpr.Result) error {
	var nodes []geneNode
	for _, bait := range result.Baits {
		nodes = append(nodes, geneNode{
			ID:        store.Gene(bait).Name(),
			IsBait:    true,
			Families:  familyIdentifiers(store, bait),
			Orthologs: orthologNames(store, bait),
		})
	}

	seen := make(map[domain.GeneID]bool)
	for _, neigh := range result.Neighbours {
		var refs []baitRef
		for _, bait := range neigh.BaitOrder {
			id, _ := net.BaitNodeID(bait)
			corrVal, _ := neigh.MaxCorrelation(bait)
			refs = append(refs, baitRef{NodeID: nodeIDString(id), RValue: corrVal})
		}
		for _, g := range neigh.CorrelatingGenes {
			if seen[g] {
				continue
			}
			seen[g] = true
			nodes = append(nodes, geneNode{ID: store.Gene(g).Name(), IsBait: false, Baits: refs})
		}
	}

	doc := struct {
		Genes []geneNode `yaml:"genes"`
	}{Genes: nodes}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, "network_genes.yaml"), string(data))
}

// familyIdentifiers lists "source:id" for every external id of every
// family gene belongs to, sorted for deterministic output.
func familyIdentifiers(store *domain.Store, gene domain.GeneID) []string {
	var out []string
	for _, fid := range store.FamiliesOf(gene) {
		for _, eid := range store.Family(fid).ExternalIDs() {
			out = append(out, eid.Source+":"+eid.ID)
		}
	}
	sort.Strings(out)
	return out
}

// orthologNames lists the names of every other gene sharing a family
// with gene, deduplicated and sorted.
func orthologNames(store *domain.Store, gene domain.GeneID) []string {
	seen := map[domain.GeneID]bool{gene: true}
	var out []string
	for _, fid := range store.FamiliesOf(gene) {
		for _, g := range store.GenesOf(fid) {
			if seen[g] {
				continue
			}
			seen[g] = true
			out = append(out, store.Gene(g).Name())
		}
	}
	sort.Strings(out)
	return out
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrap(err, path)
	}
	return nil
}
