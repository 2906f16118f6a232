// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ingest reads the tab-separated and whitespace-delimited input
// files described in spec §6 — expression matrices, clusterings,
// orthologs, gene mappings, GOI/bait lists, and gene descriptions — into
// an internal/domain.Store.
package ingest
