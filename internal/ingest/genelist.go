// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import (
	"log"
	"os"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/coexpnetviz/engine/internal/domain"
)

// UnresolvedGene is one GOI/baits-file name that did not resolve to a
// gene, paired with the reason (spec §7: either domain.ErrNotFound, an
// "invalid gene", or domain.ErrUnsupportedVariant).
type UnresolvedGene struct {
	Name string
	Err  error
}

// ReadGeneList reads a GOI or baits file at path: a whitespace-and-comma
// separated list of gene names (spec §6, "GOI / baits file").
//
// Names that fail to resolve to a gene are logged as a warning and
// returned in missing rather than aborting the read; it is the driver's
// job, not ingest's, to decide whether too few names resolved to proceed
// with a job, and which exit code a run of unresolved names implies.
func ReadGeneList(store *domain.Store, path string) (ids []domain.GeneID, missing []UnresolvedGene, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, path)
	}

	names := strings.FieldsFunc(string(data), func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	for _, name := range names {
		g, err := store.Resolve(name)
		if err != nil {
			log.Printf("warning: %s: could not resolve gene %q: %v", path, name, err)
			missing = append(missing, UnresolvedGene{Name: name, Err: err})
			continue
		}
		ids = append(ids, g.ID())
	}
	return ids, missing, nil
}
