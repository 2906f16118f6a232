// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// coexpr finds all non-bait genes whose correlation to at least one
// user-supplied bait gene crosses a positive or negative threshold in
// one or more expression matrices, projects them onto their ortholog
// families, and writes a Cytoscape-compatible network of baits and
// bait-correlated family groups.
//
// A job description YAML names the persisted database to search, the
// bait gene list, the correlation thresholds, the expression matrices
// to search and the output directory. See internal/config.CoExprJob.
//
// Exit codes: 0 success, 1 generic failure, 2 a bait name did not
// resolve to any gene, 3 a bait resolved to a gene with an unsupported
// splice variant.
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
		jobPath = flag.String("job", "", "specify the CoExpr job YAML (required)")
		help    = flag.Bool("help", false, "print help text")
	)
	flag.Parse()

	if *help {
		flag.Usage()
		fmt.Fprintf(os.Stderr, `
%s loads the persisted database named by -job's data_path, finds every
non-bait gene correlated with a bait beyond the job's thresholds in the
named expression matrices, and writes network.sif, network.node.attr,
network.edge.attr and network_genes.yaml under output_dir.

Copyright ©2020 Dan Kortschak. All rights reserved.

`, filepath.Base(os.Args[0]))
		os.Exit(0)
	}

	if *jobPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Println(os.Args)

	job, err := config.LoadCoExprJob(*jobPath)
	if err != nil {
		log.Fatalf("failed to load job: %v", err)
	}

	log.Printf("[loading store from %s]", job.DatabasePath)
	store, err := persist.Load(job.DatabasePath)
	if err != nil {
		log.Fatalf("failed to load store: %v", err)
	}

	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	log.Println("[finding bait neighbourhood]")
	result, net, issues, err := driver.RunCoExprJob(store, job)
	if err != nil {
		log.Fatalf("neighbourhood search failed: %v", err)
	}
	for _, issue := range issues {
		log.Println(issue)
	}

	if result != nil {
		log.Println("[writing network]")
		if err := driver.WriteCoExprResult(store, job, result, net); err != nil {
			log.Fatalf("failed to write network: %v", err)
		}
	}

	os.Exit(driver.HighestExitCode(issues))
}
