// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/coexpnetviz/engine/internal/domain"
)

// ReadDescriptions reads a gene-descriptions TSV at path — lines of
// "gene\tdescription" — setting each gene's free-text annotation
// (SPEC_FULL §3 EXPANSION). A later line for an already-described gene
// overwrites the earlier one and is logged as a warning; an empty
// description is ignored rather than clearing a prior one.
func ReadDescriptions(store *domain.Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, path)
	}
	defer f.Close()

	c := csv.NewReader(f)
	c.Comma = '\t'
	c.Comment = '#'
	c.FieldsPerRecord = 2
	c.ReuseRecord = true

	for {
		rec, err := c.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
		}

		name := rec[0]
		desc := strings.TrimSpace(rec[1])
		if desc == "" {
			continue
		}

		g, err := store.Resolve(name)
		if err != nil {
			log.Printf("warning: %s: skipping description for %q: %v", path, name, err)
			continue
		}
		if _, ok := store.Description(g.ID()); ok {
			log.Printf("warning: %s: duplicate description for gene %q, overwriting", path, name)
		}
		store.SetAnnotation(g.ID(), desc)
	}
	return nil
}
