// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// dbbuild ingests gene collections, expression matrices, clusterings,
// orthologs, gene mappings and description files named in a database
// configuration YAML into a fresh domain store, and persists the result
// as an opaque binary blob for cmd/morph and cmd/coexpr to load.
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
		cfgPath = flag.String("config", "", "specify the database configuration YAML (required)")
		help    = flag.Bool("help", false, "print help text")
	)
	flag.Parse()

	if *help {
		flag.Usage()
		fmt.Fprintf(os.Stderr, `
%s ingests the gene collections, expression matrices, clusterings,
orthologs, gene mappings and description files named in -config into a
fresh domain store and persists it to the store_path the configuration
names.

Copyright ©2020 Dan Kortschak. All rights reserved.

`, filepath.Base(os.Args[0]))
		os.Exit(0)
	}

	if *cfgPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Println(os.Args)

	cfg, err := config.LoadDatabaseConfig(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load database configuration: %v", err)
	}

	log.Println("[ingesting sources]")
	store, err := driver.BuildDatabase(cfg)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}

	log.Printf("[persisting store to %s]", cfg.StorePath)
	if err := persist.Save(cfg.StorePath, store); err != nil {
		log.Fatalf("failed to persist store: %v", err)
	}
}
