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
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/coexpnetviz/engine/internal/domain"
)

// ReadMatrix reads an expression-matrix TSV at path — header
// "gene\tcond_1\t...\tcond_k", one "gene\tv_1\t...\tv_k" row per line — and
// registers it on store under name (spec §6, "Expression-matrix TSV").
//
// An empty gene name causes its row to be skipped with a warning. A
// duplicate gene name, or a row whose column count does not match the
// header, is fatal (ErrMalformed).
func ReadMatrix(store *domain.Store, name, path string) (*domain.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	defer f.Close()

	c := csv.NewReader(f)
	c.Comma = '\t'
	c.Comment = '#'

	header, err := c.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.Wrap(io.ErrUnexpectedEOF, path)
		}
		return nil, errors.Wrap(err, path)
	}
	if len(header) == 0 || header[0] != "gene" {
		return nil, fmt.Errorf("%s: %w: header must begin with \"gene\"", path, ErrMalformed)
	}
	k := len(header) - 1

	var (
		geneIDs []domain.GeneID
		flat    []float64
	)
	seen := make(map[string]bool)

	c.ReuseRecord = true
	for {
		rec, err := c.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
		}

		geneName := rec[0]
		if geneName == "" {
			log.Printf("warning: %s: skipping row with empty gene name", path)
			continue
		}
		key := strings.ToLower(geneName)
		if seen[key] {
			return nil, fmt.Errorf("%s: %w: duplicate gene name %q", path, ErrMalformed, geneName)
		}
		seen[key] = true

		g, err := store.Resolve(geneName)
		if err != nil {
			return nil, fmt.Errorf("%s: resolving gene %q: %w", path, geneName, err)
		}

		row := make([]float64, k)
		for i, s := range rec[1:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %w: gene %q, condition %q: %v", path, ErrMalformed, geneName, header[i+1], err)
			}
			row[i] = v
		}
		flat = append(flat, row...)
		geneIDs = append(geneIDs, g.ID())
	}

	m := domain.NewMatrix(name, mat.NewDense(len(geneIDs), k, flat), geneIDs)
	if err := store.AddMatrix(m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
