// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package write

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coexpnetviz/engine/internal/domain"
	"github.com/coexpnetviz/engine/internal/rank"
)

// Candidate is one ranked gene in a MORPH ranking output (spec §6,
// "MORPH job YAML").
type Candidate struct {
	Rank        int     `yaml:"rank"`
	Gene        string  `yaml:"gene"`
	Score       float64 `yaml:"score"`
	Annotation  string  `yaml:"annotation"`
	GeneWebPage string  `yaml:"gene_web_page,omitempty"`
}

// Ranking is a fully-built MORPH ranking result, ready to render as
// either plain text or YAML (spec §6).
type Ranking struct {
	BestAUSR           float64     `yaml:"best_ausr"`
	AverageAUSR        float64     `yaml:"average_ausr"`
	GeneExpressionName string      `yaml:"gene_expression_name"`
	ClusteringName     string      `yaml:"clustering_name"`
	GOIGenesPresent    []string    `yaml:"goi_genes_present"`
	GOIGenesMissing    []string    `yaml:"goi_genes_missing"`
	Candidates         []Candidate `yaml:"candidates"`
}

// BuildRanking gathers res's finite scores (ordered rows of m) into a
// Ranking, sorted by descending score (ties broken by descending gene
// name), truncated to the topK best candidates.
func BuildRanking(store *domain.Store, m *domain.Matrix, clusteringName string, res *rank.Result, goiPresent []domain.GeneID, goiMissing []string, averageAUSR float64, topK int) *Ranking {
	type scored struct {
		score float64
		gene  string
		id    domain.GeneID
	}
	var results []scored
	rows, _ := m.Dims()
	for i := 0; i < rows; i++ {
		s := res.Scores[i]
		if math.IsNaN(s) {
			continue
		}
		g := m.GeneAt(i)
		results = append(results, scored{score: s, gene: store.Gene(g).Name(), id: g})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].gene > results[j].gene
	})
	if topK < len(results) {
		results = results[:topK]
	}

	present := make([]string, len(goiPresent))
	for i, g := range goiPresent {
		present[i] = store.Gene(g).Name()
	}

	candidates := make([]Candidate, len(results))
	for i, r := range results {
		c := Candidate{Rank: i + 1, Gene: r.gene, Score: r.score}
		c.Annotation, _ = store.Description(r.id)
		if page, ok := store.Collection(store.Gene(r.id).Collection()).GeneWebPage(r.gene); ok {
			c.GeneWebPage = page
		}
		candidates[i] = c
	}

	return &Ranking{
		BestAUSR:           res.AUSR,
		AverageAUSR:        averageAUSR,
		GeneExpressionName: m.Name(),
		ClusteringName:     clusteringName,
		GOIGenesPresent:    present,
		GOIGenesMissing:    append([]string(nil), goiMissing...),
		Candidates:         candidates,
	}
}

// WriteText renders r in the plain-text MORPH ranking format.
func WriteText(w io.Writer, r *Ranking) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Best AUSR: %.2f\n", r.BestAUSR)
	fmt.Fprintf(&b, "Average AUSR: %.2f\n", r.AverageAUSR)
	fmt.Fprintf(&b, "Gene expression data set: %s\n", r.GeneExpressionName)
	fmt.Fprintf(&b, "Clustering: %s\n", r.ClusteringName)
	fmt.Fprintf(&b, "Genes of interest present in data set: %s\n", strings.Join(r.GOIGenesPresent, " "))
	if len(r.GOIGenesMissing) > 0 {
		fmt.Fprintf(&b, "Genes of interest missing in data set: %s\n", strings.Join(r.GOIGenesMissing, " "))
	}
	b.WriteString("\n")
	b.WriteString("Candidates:\n")
	b.WriteString("Rank\tGene ID\tScore\tAnnotation\n")
	for _, c := range r.Candidates {
		fmt.Fprintf(&b, "%d\t%s\t%.2f\t%s\n", c.Rank, c.Gene, c.Score, c.Annotation)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteYAML renders r in the YAML MORPH ranking format, nested under a
// top-level "ranking" key.
func WriteYAML(w io.Writer, r *Ranking) error {
	doc := struct {
		Ranking *Ranking `yaml:"ranking"`
	}{Ranking: r}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}
