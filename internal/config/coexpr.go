// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// thresholdTolerance mirrors spec §6's "|v| ≤ 1 + 1e-7" allowance for a
// threshold supplied by a user who measured correlation with its own
// floating-point slack.
const thresholdTolerance = 1 + 1e-7

// CoExprJob is the CoExpr job-description YAML (spec §6, "CoExpr job
// YAML").
type CoExprJob struct {
	DatabasePath       string   `yaml:"data_path"`
	Baits              string   `yaml:"baits"`
	NegativeThreshold  float64  `yaml:"negative_treshold"`
	PositiveThreshold  float64  `yaml:"positive_treshold"`
	ExpressionMatrices []string `yaml:"expression_matrices"`
	OutputDir          string   `yaml:"output_dir"`
}

// LoadCoExprJob reads and validates a CoExprJob at path.
func LoadCoExprJob(path string) (*CoExprJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	var job CoExprJob
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, errors.Wrap(err, path)
	}
	if err := job.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &job, nil
}

func (j *CoExprJob) validate() error {
	if j.DatabasePath == "" {
		return fmt.Errorf("data_path must be set")
	}
	if j.Baits == "" {
		return fmt.Errorf("baits must be set")
	}
	if j.OutputDir == "" {
		return fmt.Errorf("output_dir must be set")
	}
	if math.Abs(j.NegativeThreshold) > thresholdTolerance {
		return fmt.Errorf("negative_treshold %v out of range [-1-1e-7, 1+1e-7]", j.NegativeThreshold)
	}
	if math.Abs(j.PositiveThreshold) > thresholdTolerance {
		return fmt.Errorf("positive_treshold %v out of range [-1-1e-7, 1+1e-7]", j.PositiveThreshold)
	}
	if j.NegativeThreshold > j.PositiveThreshold {
		return fmt.Errorf("negative_treshold %v must be <= positive_treshold %v", j.NegativeThreshold, j.PositiveThreshold)
	}
	if len(j.ExpressionMatrices) == 0 {
		return fmt.Errorf("expression_matrices must be non-empty")
	}
	return nil
}
