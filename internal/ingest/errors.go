// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import "errors"

// ErrMalformed is returned for structural violations of an input file's
// format — the wrong header, a record with the wrong column count, a
// duplicate gene name within one expression matrix, a contradictory
// clustering row. Callers should abort the run on ErrMalformed (spec §7
// kind 1).
var ErrMalformed = errors.New("ingest: malformed input")
