// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	pkgerrors "github.com/pkg/errors"

	"github.com/coexpnetviz/engine/internal/domain"
)

// ReadOrthologs reads an orthologs file at path — lines of
// "external_id\tgene(\tgene)*" — under the named source, creating one
// ortholog family per line (spec §6, "Orthologs file"). Lines with fewer
// than 3 tokens are singletons and are ignored.
//
// If a gene already belongs to a family created earlier in this same file,
// the two families are merged (boundary scenario "family merge"):
// families are a many-to-many membership, so two lines that both mention a
// gene describe one larger family, not two overlapping ones.
//
// An unsupported splice variant is fatal here (spec §7, "unsupported
// variant ... fatal in orthologs context").
func ReadOrthologs(store *domain.Store, source, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return pkgerrors.Wrap(err, path)
	}
	defer f.Close()

	c := csv.NewReader(f)
	c.Comma = '\t'
	c.Comment = '#'
	c.FieldsPerRecord = -1

	// alias tracks families merged away during this file's ingest, so that
	// a later line referencing an already-placed gene finds its current
	// (possibly merged-into) family by following the chain.
	alias := make(map[domain.FamilyID]domain.FamilyID)
	var find func(domain.FamilyID) domain.FamilyID
	find = func(fid domain.FamilyID) domain.FamilyID {
		for {
			p, ok := alias[fid]
			if !ok {
				return fid
			}
			fid = p
		}
	}

	geneFamily := make(map[domain.GeneID]domain.FamilyID)

	for {
		rec, err := c.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
		}
		if len(rec) < 3 {
			continue
		}

		externalID := rec[0]
		fid := store.AddFamily(source, externalID)

		for _, name := range rec[1:] {
			g, err := store.Resolve(name)
			if errors.Is(err, domain.ErrUnsupportedVariant) {
				return fmt.Errorf("%s: gene %q: %w", path, name, err)
			}
			if err != nil {
				return fmt.Errorf("%s: resolving gene %q: %w", path, name, err)
			}
			gid := g.ID()

			if prev, ok := geneFamily[gid]; ok {
				a, b := find(prev), find(fid)
				if a != b {
					survivor, loser := a, b
					if store.FamilySize(b) > store.FamilySize(a) {
						survivor, loser = b, a
					}
					store.MergeFamily(a, b)
					alias[loser] = survivor
					fid = survivor
				} else {
					fid = a
				}
			}

			store.AddGeneToFamily(gid, fid)
			geneFamily[gid] = fid
		}
	}
	return nil
}
