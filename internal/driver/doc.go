// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver orchestrates MORPH and CoExpr jobs against an ingested
// domain store: it parses job descriptions, invokes the ranker or the
// neighbourhood finder, gathers best-per-GOI results, and maps failures
// onto the run's exit code (spec §6, §7, C8).
package driver
