// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import "errors"

// Sentinel errors for the domain store's distinguished failure kinds
// (spec §4.1, §7). Callers should compare with errors.Is.
var (
	// ErrNotFound is returned when a lookup fails to resolve an entity.
	ErrNotFound = errors.New("domain: not found")

	// ErrUnsupportedVariant is returned by Resolve when a raw gene name
	// parses to a splice-variant id other than 1.
	ErrUnsupportedVariant = errors.New("domain: unsupported splice variant")

	// ErrDuplicateCollection is returned when a gene collection name is
	// registered twice.
	ErrDuplicateCollection = errors.New("domain: duplicate gene collection")

	// ErrEmptyParserRules is returned when a gene collection is registered
	// with no parser rules.
	ErrEmptyParserRules = errors.New("domain: gene collection has no parser rules")

	// ErrFamilyNotEmpty is returned by EraseFamily when the family still
	// has member genes.
	ErrFamilyNotEmpty = errors.New("domain: family is not empty")

	// ErrDuplicateGeneInMatrix is returned when a gene already present in
	// one expression matrix is added to another matrix of the same run.
	ErrDuplicateGeneInMatrix = errors.New("domain: gene already present in another expression matrix")

	// ErrDuplicateMatrixName is returned when two matrices are registered
	// with the same name.
	ErrDuplicateMatrixName = errors.New("domain: duplicate expression matrix name")

	// ErrDuplicateClusteringName is returned when two clusterings of the
	// same gene collection/matrix are registered with the same name.
	ErrDuplicateClusteringName = errors.New("domain: duplicate clustering name")

	// ErrClusterConflict names the case of a clustering that assigns the
	// same gene to two different clusters, or the same (cluster, gene)
	// pair twice. No function in this module returns it: NewClustering
	// panics on that case, and internal/ingest reports it as its own
	// ErrMalformed.
	ErrClusterConflict = errors.New("domain: contradictory clustering row")

	// ErrSameCollectionMapping is returned when a gene mapping links two
	// genes of the same gene collection.
	ErrSameCollectionMapping = errors.New("domain: gene mapping between genes of the same collection")
)
