// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rank implements the MORPH per-cluster ranking score and its
// leave-one-out AUSR self-evaluation, given a clustering view over an
// expression matrix and a correlation block built against a genes-of-
// interest row set.
package rank
