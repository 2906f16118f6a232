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

	"github.com/pkg/errors"

	"github.com/coexpnetviz/engine/internal/domain"
)

// ReadClustering reads a clustering TSV at path — lines of
// "gene\tcluster_name" — against the matrix registered under matrixName,
// and registers the resulting clustering under clusteringName (spec §6,
// "Clustering TSV").
//
// A gene not present in the named matrix is outside the clustering's
// domain and is silently dropped, save for a warning logging the total
// count (spec §3, "a clustering referring to genes absent from the
// matrix silently drops them and emits a warning with a count"); whether
// that leaves the clustering with no overlap at all is a job-skip
// decision made by the driver, not by ingest. Assigning the same
// (cluster, gene) pair twice, or the same gene to two different
// clusters, is fatal (ErrMalformed).
func ReadClustering(store *domain.Store, matrixName, clusteringName, path string) (*domain.Clustering, error) {
	m, ok := store.Matrix(matrixName)
	if !ok {
		return nil, fmt.Errorf("%s: unknown expression matrix %q", path, matrixName)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	defer f.Close()

	c := csv.NewReader(f)
	c.Comma = '\t'
	c.Comment = '#'
	c.FieldsPerRecord = 2
	c.ReuseRecord = true

	var order []string
	clusters := make(map[string]*domain.Cluster)
	rowCluster := make(map[int]string)
	dropped := 0

	for {
		rec, err := c.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
		}

		geneName, clusterName := rec[0], rec[1]
		g, err := store.Resolve(geneName)
		if err != nil {
			return nil, fmt.Errorf("%s: resolving gene %q: %w", path, geneName, err)
		}
		row, ok := m.Row(g.ID())
		if !ok {
			dropped++
			continue
		}

		if existing, ok := rowCluster[row]; ok {
			if existing == clusterName {
				return nil, fmt.Errorf("%s: %w: gene %q assigned to cluster %q twice", path, ErrMalformed, geneName, clusterName)
			}
			return nil, fmt.Errorf("%s: %w: gene %q assigned to clusters %q and %q", path, ErrMalformed, geneName, existing, clusterName)
		}
		rowCluster[row] = clusterName

		cl, ok := clusters[clusterName]
		if !ok {
			cl = &domain.Cluster{Name: clusterName}
			clusters[clusterName] = cl
			order = append(order, clusterName)
		}
		cl.Rows = append(cl.Rows, row)
	}

	ordered := make([]*domain.Cluster, len(order))
	for i, name := range order {
		ordered[i] = clusters[name]
	}

	if dropped > 0 {
		log.Printf("warning: %s: dropped %d gene(s) absent from matrix %q", path, dropped, matrixName)
	}

	rows, _ := m.Dims()
	v := domain.NewClustering(clusteringName, matrixName, ordered, rows)
	if err := store.AddClustering(v); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
