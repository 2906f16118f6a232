// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coexpr finds the co-expression neighbourhood of a set of bait
// genes across one or more expression matrices, groups crossing targets
// by ortholog family, and enumerates bait-bait orthology edges — the
// analysis behind the CoExpr network output.
package coexpr
