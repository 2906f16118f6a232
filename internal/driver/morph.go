// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"errors"
	"log"
	"math"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"

	"github.com/coexpnetviz/engine/internal/config"
	"github.com/coexpnetviz/engine/internal/corr"
	"github.com/coexpnetviz/engine/internal/domain"
	"github.com/coexpnetviz/engine/internal/ingest"
	"github.com/coexpnetviz/engine/internal/rank"
	"github.com/coexpnetviz/engine/internal/write"
)

// minGOISize is spec §7 kind 3's job-skip threshold: a GOI matching
// fewer than this many genes is skipped rather than ranked.
const minGOISize = 5

// MorphOutcome is one GOI's best-scoring (matrix, clustering) ranking,
// ready to write.
type MorphOutcome struct {
	GOIName string
	Ranking *write.Ranking

	// SelfRanks is the winning attempt's sorted leave-one-out rank list
	// (rank.Result.SelfRanks), kept for cmd/morphplot's fraction-recovered
	// diagnostic curve; cmd/morph never looks at it.
	SelfRanks []int
}

// RunMorphJobList runs every GOI of every job in jl against store,
// returning one MorphOutcome per GOI that produced a ranking. issues
// collects non-fatal, exit-code-bearing problems (spec §6/§7); a
// non-nil err is fatal (I/O) and aborts the remaining work.
func RunMorphJobList(store *domain.Store, jl *config.MorphJobList) (outcomes []*MorphOutcome, issues []error, err error) {
	for _, job := range jl.Jobs {
		for _, goi := range job.GenesOfInterest {
			outcome, jobIssues, err := runMorphGOI(store, job, goi, jl.TopK)
			issues = append(issues, jobIssues...)
			if err != nil {
				return outcomes, issues, err
			}
			if outcome != nil {
				outcomes = append(outcomes, outcome)
			}
		}
	}
	return outcomes, issues, nil
}

func runMorphGOI(store *domain.Store, job config.MorphJob, goi config.GOIEntry, topK int) (*MorphOutcome, []error, error) {
	ids, missing, err := ingest.ReadGeneList(store, goi.Path)
	if err != nil {
		return nil, nil, err
	}

	var issues []error
	missingNames := make([]string, len(missing))
	for i, u := range missing {
		missingNames[i] = u.Name
		if errors.Is(u.Err, domain.ErrUnsupportedVariant) {
			issues = append(issues, unsupportedVariantIssue(u.Name))
		} else {
			issues = append(issues, invalidGeneIssue(u.Name))
		}
	}

	if len(ids) < minGOISize {
		log.Printf("warning: job skipped: GOI %q matched only %d gene(s), need >= %d", goi.Name, len(ids), minGOISize)
		issues = append(issues, ErrJobSkipped)
		return nil, issues, nil
	}

	matrices := store.Matrices()
	if job.Matrix != "" {
		m, ok := store.Matrix(job.Matrix)
		if !ok {
			log.Printf("warning: job skipped: GOI %q: matrix %q not found", goi.Name, job.Matrix)
			issues = append(issues, ErrJobSkipped)
			return nil, issues, nil
		}
		matrices = []*domain.Matrix{m}
	}

	type attempt struct {
		result     *rank.Result
		matrix     *domain.Matrix
		clustering string
		present    []domain.GeneID
	}
	var attempts []attempt

	for _, m := range matrices {
		var rows []int
		var present []domain.GeneID
		for _, g := range ids {
			if r, ok := m.Row(g); ok {
				rows = append(rows, r)
				present = append(present, g)
			}
		}
		if len(rows) < minGOISize {
			continue
		}

		block, err := corr.New(m.Dense(), rows, 1)
		if err != nil {
			continue
		}

		for _, cl := range store.ClusteringsOf(m.Name()) {
			res, err := rank.New(cl, block, rows)
			if err != nil {
				log.Printf("warning: ranking failed for matrix %q clustering %q: %v", m.Name(), cl.Name(), err)
				continue
			}
			if allNaN(res.Scores) {
				continue
			}
			attempts = append(attempts, attempt{result: res, matrix: m, clustering: cl.Name(), present: present})
		}
	}

	if len(attempts) == 0 {
		log.Printf("warning: job skipped: GOI %q: no candidates in any matrix/clustering", goi.Name)
		issues = append(issues, ErrJobSkipped)
		return nil, issues, nil
	}

	best := attempts[0]
	sumAUSR := 0.0
	for _, a := range attempts {
		sumAUSR += a.result.AUSR
		if a.result.AUSR > best.result.AUSR {
			best = a
		}
	}
	averageAUSR := sumAUSR / float64(len(attempts))

	// original_source/morph/Ranking.cpp::save lists as "missing" every
	// full-GOI gene the winning matrix does not measure, not just the
	// names ReadGeneList failed to resolve at all (spec §6,
	// "goi_genes_missing"); union the two so a gene that resolved fine
	// but was never measured in best.matrix still shows up.
	present := make(map[domain.GeneID]bool, len(best.present))
	for _, g := range best.present {
		present[g] = true
	}
	for _, g := range ids {
		if !present[g] {
			missingNames = append(missingNames, store.Gene(g).Name())
		}
	}

	ranking := write.BuildRanking(store, best.matrix, best.clustering, best.result, best.present, missingNames, averageAUSR, topK)
	return &MorphOutcome{GOIName: goi.Name, Ranking: ranking, SelfRanks: best.result.SelfRanks}, issues, nil
}

func allNaN(scores []float64) bool {
	for _, s := range scores {
		if !math.IsNaN(s) {
			return false
		}
	}
	return true
}

// WriteMorphOutcome writes o's ranking as plain text under outputDir,
// named after the GOI, plus a YAML sibling when writeYAML is set (spec
// §6, MorphJobList.output_yaml).
func WriteMorphOutcome(outputDir string, o *MorphOutcome, writeYAML bool) error {
	base := filepath.Join(outputDir, o.GOIName)

	if err := writeToFile(base+".txt", func(f *os.File) error { return write.WriteText(f, o.Ranking) }); err != nil {
		return err
	}
	if !writeYAML {
		return nil
	}
	return writeToFile(base+".yaml", func(f *os.File) error { return write.WriteYAML(f, o.Ranking) })
}

func writeToFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return pkgerrors.Wrap(err, path)
	}
	if err := render(f); err != nil {
		f.Close()
		return pkgerrors.Wrap(err, path)
	}
	if err := f.Close(); err != nil {
		return pkgerrors.Wrap(err, path)
	}
	return nil
}
