// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// GOIEntry names one genes-of-interest file by a display name and a
// path (spec §6, "GOI / baits file"), mirroring the original job list's
// "genes_of_interest" entries.
type GOIEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// MorphJob is one GOI's worth of work against a persisted database: every
// (matrix, clustering) pair already present in the store is tried, and
// the best-AUSR ranking per GOI is kept (spec §8, C8 driver).
//
// Matrix optionally restricts the search to clusterings of one named
// matrix; left empty, every matrix in the store is considered, mirroring
// the original's run_jobs loop over the whole database rather than a
// literal "path to matrix(es)" per job.
type MorphJob struct {
	Matrix          string     `yaml:"matrix,omitempty"`
	GenesOfInterest []GOIEntry `yaml:"genes_of_interest"`
}

// MorphJobList is the top-level MORPH job-description YAML (spec §6,
// "MORPH job YAML").
type MorphJobList struct {
	DatabasePath string     `yaml:"data_path"`
	OutputDir    string     `yaml:"output_dir"`
	TopK         int        `yaml:"top_k"`
	OutputYAML   bool       `yaml:"output_yaml"`
	Jobs         []MorphJob `yaml:"jobs"`
}

// LoadMorphJobList reads and validates a MorphJobList at path.
func LoadMorphJobList(path string) (*MorphJobList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	var jl MorphJobList
	if err := yaml.Unmarshal(data, &jl); err != nil {
		return nil, errors.Wrap(err, path)
	}
	if err := jl.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &jl, nil
}

func (jl *MorphJobList) validate() error {
	if jl.DatabasePath == "" {
		return fmt.Errorf("data_path must be set")
	}
	if jl.OutputDir == "" {
		return fmt.Errorf("output_dir must be set")
	}
	if jl.TopK <= 0 {
		return fmt.Errorf("top_k must be > 0, got %d", jl.TopK)
	}
	if len(jl.Jobs) == 0 {
		return fmt.Errorf("jobs must be non-empty")
	}
	for i, j := range jl.Jobs {
		if len(j.GenesOfInterest) == 0 {
			return fmt.Errorf("jobs[%d]: genes_of_interest must be non-empty", i)
		}
		for k, g := range j.GenesOfInterest {
			if g.Name == "" || g.Path == "" {
				return fmt.Errorf("jobs[%d].genes_of_interest[%d]: name and path must be set", i, k)
			}
		}
	}
	return nil
}
