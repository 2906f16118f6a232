// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"errors"
	"log"

	"github.com/coexpnetviz/engine/internal/coexpr"
	"github.com/coexpnetviz/engine/internal/config"
	"github.com/coexpnetviz/engine/internal/domain"
	"github.com/coexpnetviz/engine/internal/ingest"
	"github.com/coexpnetviz/engine/internal/write"
)

// RunCoExprJob reads job's bait list, restricts the neighbourhood search
// to job's named expression matrices, and builds the assembled network.
// A nil result together with a non-nil issue means the job was skipped
// (spec §7 kind 3, "matrix has no baits"); a non-nil err is fatal.
func RunCoExprJob(store *domain.Store, job *config.CoExprJob) (*coexpr.Result, *coexpr.Network, []error, error) {
	ids, missing, err := ingest.ReadGeneList(store, job.Baits)
	if err != nil {
		return nil, nil, nil, err
	}

	var issues []error
	for _, u := range missing {
		if errors.Is(u.Err, domain.ErrUnsupportedVariant) {
			issues = append(issues, unsupportedVariantIssue(u.Name))
		} else {
			issues = append(issues, invalidGeneIssue(u.Name))
		}
	}

	if len(ids) == 0 {
		log.Printf("warning: job skipped: no baits resolved from %s", job.Baits)
		issues = append(issues, ErrJobSkipped)
		return nil, nil, issues, nil
	}

	result, err := coexpr.Find(store, ids, job.NegativeThreshold, job.PositiveThreshold, 1, job.ExpressionMatrices...)
	if err != nil {
		return nil, nil, issues, err
	}
	if len(result.Baits) == 0 {
		log.Printf("warning: job skipped: no bait present in the named expression matrices")
		issues = append(issues, ErrJobSkipped)
		return nil, nil, issues, nil
	}
	net := result.BuildNetwork()
	return result, net, issues, nil
}

// WriteCoExprResult renders result/net to job.OutputDir's four Cytoscape
// files.
func WriteCoExprResult(store *domain.Store, job *config.CoExprJob, result *coexpr.Result, net *coexpr.Network) error {
	return write.WriteNetwork(job.OutputDir, store, result, net)
}
