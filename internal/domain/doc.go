// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package domain holds the in-memory graph of genes, gene collections,
// ortholog families, expression matrices and clusterings that the
// correlation and ranking engines operate over. Every entity is created
// during a single ingest phase and is read-only afterwards; entities are
// referred to by stable, opaque handles rather than pointers so that the
// store can be passed around and copied cheaply by value where needed.
package domain
