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

// RuleConfig is one gene collection parser rule (spec §3, §4.1).
type RuleConfig struct {
	Match       string `yaml:"match"`
	Replace     string `yaml:"replace"`
	SpliceGroup int    `yaml:"splice_variant_group"`
}

// CollectionConfig describes one gene collection to register before any
// ingest that references it.
type CollectionConfig struct {
	Name        string       `yaml:"name"`
	Species     string       `yaml:"species"`
	GeneWebPage string       `yaml:"gene_web_page"`
	Rules       []RuleConfig `yaml:"parser_rules"`
}

// MatrixConfig names an expression-matrix TSV to ingest under Name (spec
// §6, "Expression-matrix TSV").
type MatrixConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// ClusteringConfig names a clustering TSV to ingest against Matrix under
// Name (spec §6, "Clustering TSV").
type ClusteringConfig struct {
	Matrix string `yaml:"matrix"`
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
}

// OrthologConfig names an orthologs file to ingest under the external-id
// namespace Source (spec §6, "Orthologs file").
type OrthologConfig struct {
	Source string `yaml:"source"`
	Path   string `yaml:"path"`
}

// DatabaseConfig describes one build run: every gene collection,
// expression matrix, clustering, orthologs file, gene-mappings file and
// description file to ingest into a fresh domain store, plus where to
// persist the result (spec §6, "Persisted domain state").
type DatabaseConfig struct {
	StorePath          string             `yaml:"store_path"`
	Collections        []CollectionConfig `yaml:"collections"`
	ExpressionMatrices []MatrixConfig     `yaml:"expression_matrices"`
	Clusterings        []ClusteringConfig `yaml:"clusterings"`
	Orthologs          []OrthologConfig   `yaml:"orthologs"`
	Mappings           []string           `yaml:"mappings"`
	Descriptions       []string           `yaml:"descriptions"`
}

// LoadDatabaseConfig reads and validates a DatabaseConfig at path.
func LoadDatabaseConfig(path string) (*DatabaseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	var cfg DatabaseConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, path)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *DatabaseConfig) validate() error {
	if c.StorePath == "" {
		return fmt.Errorf("store_path must be set")
	}
	for _, col := range c.Collections {
		if col.Name == "" {
			return fmt.Errorf("collection with empty name")
		}
		if len(col.Rules) == 0 {
			return fmt.Errorf("collection %q: parser_rules must be non-empty", col.Name)
		}
	}
	for _, m := range c.ExpressionMatrices {
		if m.Name == "" || m.Path == "" {
			return fmt.Errorf("expression_matrices entry requires name and path")
		}
	}
	for _, cl := range c.Clusterings {
		if cl.Matrix == "" || cl.Name == "" || cl.Path == "" {
			return fmt.Errorf("clusterings entry requires matrix, name and path")
		}
	}
	for _, o := range c.Orthologs {
		if o.Source == "" || o.Path == "" {
			return fmt.Errorf("orthologs entry requires source and path")
		}
	}
	return nil
}
