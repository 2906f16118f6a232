// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"github.com/coexpnetviz/engine/internal/config"
	"github.com/coexpnetviz/engine/internal/domain"
	"github.com/coexpnetviz/engine/internal/ingest"
)

// BuildDatabase ingests every source named in cfg into a fresh
// domain.Store and returns it, ready for persist.Save (spec §6, "Persisted
// domain state"). A returned error is fatal (spec §7 kind 1): no sources
// after the first malformed one are read, and the caller must not persist
// a partial store.
func BuildDatabase(cfg *config.DatabaseConfig) (*domain.Store, error) {
	store := domain.NewStore()

	for _, c := range cfg.Collections {
		rules := make([]domain.ParserRule, len(c.Rules))
		for i, r := range c.Rules {
			rules[i] = domain.NewParserRule(r.Match, r.Replace, r.SpliceGroup)
		}
		if _, err := store.AddCollection(c.Name, c.Species, c.GeneWebPage, rules); err != nil {
			return nil, err
		}
	}

	for _, m := range cfg.ExpressionMatrices {
		if _, err := ingest.ReadMatrix(store, m.Name, m.Path); err != nil {
			return nil, err
		}
	}

	for _, cl := range cfg.Clusterings {
		if _, err := ingest.ReadClustering(store, cl.Matrix, cl.Name, cl.Path); err != nil {
			return nil, err
		}
	}

	for _, o := range cfg.Orthologs {
		if err := ingest.ReadOrthologs(store, o.Source, o.Path); err != nil {
			return nil, err
		}
	}

	for _, path := range cfg.Mappings {
		if err := ingest.ReadMappings(store, path); err != nil {
			return nil, err
		}
	}

	for _, path := range cfg.Descriptions {
		if err := ingest.ReadDescriptions(store, path); err != nil {
			return nil, err
		}
	}

	assignSingletonFamilies(store)

	return store, nil
}

// assignSingletonFamilies gives every gene untouched by an ortholog file a
// private, zero-external-id family of its own (spec §9, "Singleton
// families for isolated genes"): the CoExpr orphan-family filter
// (FamilySize < 2) then discards it as a target, while the gene itself is
// never without a family, preserving the "every gene belongs to at least
// one family" invariant.
func assignSingletonFamilies(store *domain.Store) {
	for _, g := range store.AllGenes() {
		if len(store.FamiliesOf(g.ID())) > 0 {
			continue
		}
		f := store.AddSingletonFamily()
		store.AddGeneToFamily(g.ID(), f)
	}
}
