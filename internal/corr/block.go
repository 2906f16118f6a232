// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package corr

import (
	"errors"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// ErrEmptySubset is returned by New when the subset of row indices is
// empty.
var ErrEmptySubset = errors.New("corr: empty subset")

// ErrSubsetOutOfRange is returned by New when a subset row index is not a
// valid row of the source matrix.
var ErrSubsetOutOfRange = errors.New("corr: subset row index out of range")

// Block is a rectangular Pearson correlation block: all rows of a source
// matrix against a chosen subset of those rows, C[i, j] = pearson(row_i,
// row_subset[j]).
type Block struct {
	data   *mat.Dense
	subset []int
	colOf  map[int]int
	rows   int
	cols   int
}

// Subset returns the row indices the block was built over, in order.
func (b *Block) Subset() []int {
	out := make([]int, len(b.subset))
	copy(out, b.subset)
	return out
}

// Dims returns the block's shape: (number of source rows, |subset|).
func (b *Block) Dims() (rows, cols int) { return b.rows, b.cols }

// At returns C[row, col], where col indexes into Subset().
func (b *Block) At(row, col int) float64 { return b.data.At(row, col) }

// ColumnOf returns the block column that row occupies, if row is a member
// of the subset, and true; otherwise (-1, false).
func (b *Block) ColumnOf(row int) (int, bool) {
	c, ok := b.colOf[row]
	return c, ok
}

// New builds the correlation block of source over subset using a single
// left-to-right Welford-style running pass (one update per expression
// column, accumulating running mean, sum-of-squares and sum-of-cross-
// products) rather than the naive two-pass or Σxy−ΣxΣy/n forms.
//
// Rows of source with zero variance yield NaN throughout their row and
// column of the block — this falls out of the algorithm's 0/0 divisions
// without special-casing, and is the intended "undefined" propagation for
// downstream ranking (spec §4.2).
//
// parallel controls how many row-chunk workers process the output rows
// concurrently; the row recurrence used here is independent per source
// row, so splitting rows across workers does not change the result.
// parallel <= 1 runs sequentially.
func New(source *mat.Dense, subset []int, parallel int) (*Block, error) {
	n, k := source.Dims()
	if len(subset) == 0 {
		return nil, ErrEmptySubset
	}
	colOf := make(map[int]int, len(subset))
	for j, s := range subset {
		if s < 0 || s >= n {
			return nil, ErrSubsetOutOfRange
		}
		colOf[s] = j
	}

	// deltaHist[t-1][j] holds subset row subset[j]'s δ at step t (t=1..k-1),
	// the running-mean residual computed exactly as every row's own
	// recurrence computes it (spec §4.2). Subset rows are full source rows
	// like any other; precomputing just their δ history lets the main pass
	// below process disjoint row chunks with no shared mutable state.
	deltaHist := make([][]float64, maxInt(k-1, 0))
	for t := range deltaHist {
		deltaHist[t] = make([]float64, len(subset))
	}
	for j, s := range subset {
		mu := source.At(s, 0)
		for t := 1; t < k; t++ {
			x := source.At(s, t)
			delta := x - mu
			deltaHist[t-1][j] = delta
			mu += delta / float64(t+1)
		}
	}

	ss := make([]float64, n)
	sc := mat.NewDense(n, len(subset), nil)

	computeRow := func(i int) {
		mu := source.At(i, 0)
		rowSS := 0.0
		rowSC := make([]float64, len(subset))
		for t := 1; t < k; t++ {
			x := source.At(i, t)
			delta := x - mu
			weight := float64(t) / float64(t+1)
			rowSS += delta * delta * weight
			d := deltaHist[t-1]
			for j := range rowSC {
				rowSC[j] += delta * d[j] * weight
			}
			mu += delta / float64(t+1)
		}
		ss[i] = rowSS
		sc.SetRow(i, rowSC)
	}

	if parallel <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			computeRow(i)
		}
	} else {
		chunks := parallel
		if chunks > n {
			chunks = n
		}
		chunkSize := (n + chunks - 1) / chunks
		var wg sync.WaitGroup
		for start := 0; start < n; start += chunkSize {
			end := start + chunkSize
			if end > n {
				end = n
			}
			wg.Add(1)
			go func(start, end int) {
				defer wg.Done()
				for i := start; i < end; i++ {
					computeRow(i)
				}
			}(start, end)
		}
		wg.Wait()
	}

	c := mat.NewDense(n, len(subset), nil)
	for i := 0; i < n; i++ {
		sdI := math.Sqrt(ss[i])
		for j, s := range subset {
			sdS := math.Sqrt(ss[s])
			c.Set(i, j, sc.At(i, j)/(sdI*sdS))
		}
	}

	return &Block{data: c, subset: append([]int(nil), subset...), colOf: colOf, rows: n, cols: len(subset)}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
