// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import "gonum.org/v1/gonum/mat"

// Matrix is a named dense M x K expression matrix carrying a bijection
// between rows [0, M) and genes (spec §3). Row i holds gene Genes()[i]'s
// measurements across the K conditions.
type Matrix struct {
	name  string
	data  *mat.Dense
	genes []GeneID       // row -> gene
	rowOf map[GeneID]int // gene -> row
}

// NewMatrix builds a Matrix from dense data and a parallel row-to-gene
// slice; len(genes) must equal data's row count. Callers (internal/ingest)
// are responsible for enforcing that no gene appears twice.
func NewMatrix(name string, data *mat.Dense, genes []GeneID) *Matrix {
	rowOf := make(map[GeneID]int, len(genes))
	for i, g := range genes {
		rowOf[g] = i
	}
	return &Matrix{name: name, data: data, genes: genes, rowOf: rowOf}
}

// Name returns the matrix's name.
func (m *Matrix) Name() string { return m.name }

// Dims returns the matrix's row and column counts.
func (m *Matrix) Dims() (rows, cols int) { return m.data.Dims() }

// Dense returns the underlying dense data. The returned matrix must not be
// mutated; the analytical phase treats the store as immutable (spec §5).
func (m *Matrix) Dense() *mat.Dense { return m.data }

// Row returns the row index of gene in this matrix, or (-1, false) if the
// gene is not present.
func (m *Matrix) Row(gene GeneID) (int, bool) {
	r, ok := m.rowOf[gene]
	return r, ok
}

// HasGene reports whether gene appears as a row of this matrix.
func (m *Matrix) HasGene(gene GeneID) bool {
	_, ok := m.rowOf[gene]
	return ok
}

// GeneAt returns the gene at row r.
func (m *Matrix) GeneAt(r int) GeneID { return m.genes[r] }

// Genes returns the row-ordered slice of gene handles.
func (m *Matrix) Genes() []GeneID {
	out := make([]GeneID, len(m.genes))
	copy(out, m.genes)
	return out
}
