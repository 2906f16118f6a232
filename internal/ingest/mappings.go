// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	pkgerrors "github.com/pkg/errors"

	"github.com/coexpnetviz/engine/internal/domain"
)

// ReadMappings reads a gene-mappings file at path — lines of
// "gene(\tgene)+" — creating a "highly similar" link between the first
// gene and each subsequent gene on the line (spec §6, "Gene-mappings
// file"; SPEC_FULL §3 EXPANSION).
//
// Unlike the orthologs file, an unsupported splice variant here is a
// warning, not a fatal error: the affected half of the pair is skipped
// and ingest continues (spec §7, "warning-and-skip in mappings context").
// A mapping between two genes of the same gene collection remains fatal.
func ReadMappings(store *domain.Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return pkgerrors.Wrap(err, path)
	}
	defer f.Close()

	c := csv.NewReader(f)
	c.Comma = '\t'
	c.Comment = '#'
	c.FieldsPerRecord = -1

	for {
		rec, err := c.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
		}
		if len(rec) < 2 {
			continue
		}

		first, err := store.Resolve(rec[0])
		if errors.Is(err, domain.ErrUnsupportedVariant) {
			log.Printf("warning: %s: skipping mapping line for %q: %v", path, rec[0], err)
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: resolving gene %q: %w", path, rec[0], err)
		}

		for _, name := range rec[1:] {
			g, err := store.Resolve(name)
			if errors.Is(err, domain.ErrUnsupportedVariant) {
				log.Printf("warning: %s: skipping mapping %q -> %q: %v", path, rec[0], name, err)
				continue
			}
			if err != nil {
				return fmt.Errorf("%s: resolving gene %q: %w", path, name, err)
			}
			if err := store.AddMapping(first.ID(), g.ID()); err != nil {
				return fmt.Errorf("%s: mapping %q -> %q: %w", path, rec[0], name, err)
			}
		}
	}
	return nil
}
