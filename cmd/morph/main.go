// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// morph ranks candidate genes against one or more genes-of-interest sets
// by intra-cluster co-expression, self-evaluating every (expression
// matrix, clustering) pairing it tries with a leave-one-out AUSR score
// and keeping only the best-scoring pairing per GOI.
//
// A job description YAML names the persisted database to search, the
// GOI files to rank, the output directory and the number of candidates
// to keep per ranking. See internal/config.MorphJobList.
//
// Exit codes: 0 success, 1 generic failure, 2 a GOI contained a gene
// name that did not resolve to any gene, 3 a GOI contained a gene with
// an unsupported splice variant.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/coexpnetviz/engine/internal/config"
	"github.com/coexpnetviz/engine/internal/driver"
	"github.com/coexpnetviz/engine/internal/persist"
)

func main() {
	var (
		jobsPath = flag.String("jobs", "", "specify the MORPH job list YAML (required)")
		help     = flag.Bool("help", false, "print help text")
	)
	flag.Parse()

	if *help {
		flag.Usage()
		fmt.Fprintf(os.Stderr, `
%s loads the persisted database named by -jobs's data_path, ranks every
genes-of-interest file named in each job against every (matrix,
clustering) pair it finds, and writes the best-scoring ranking per GOI
under output_dir.

Copyright ©2020 Dan Kortschak. All rights reserved.

`, filepath.Base(os.Args[0]))
		os.Exit(0)
	}

	if *jobsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Println(os.Args)

	jl, err := config.LoadMorphJobList(*jobsPath)
	if err != nil {
		log.Fatalf("failed to load job list: %v", err)
	}

	log.Printf("[loading store from %s]", jl.DatabasePath)
	store, err := persist.Load(jl.DatabasePath)
	if err != nil {
		log.Fatalf("failed to load store: %v", err)
	}

	if err := os.MkdirAll(jl.OutputDir, 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	log.Println("[ranking jobs]")
	outcomes, issues, err := driver.RunMorphJobList(store, jl)
	if err != nil {
		log.Fatalf("ranking failed: %v", err)
	}
	for _, issue := range issues {
		log.Println(issue)
	}

	for _, o := range outcomes {
		if err := driver.WriteMorphOutcome(jl.OutputDir, o, jl.OutputYAML); err != nil {
			log.Fatalf("failed to write ranking for %q: %v", o.GOIName, err)
		}
	}

	os.Exit(driver.HighestExitCode(issues))
}
