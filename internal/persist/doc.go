// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package persist saves and loads the opaque binary blob that carries a
// domain.Store's entire ingested state between a build run and the
// analysis runs that consume it (spec §6, "Persisted domain state").
//
// The encoding is a gob stream of a domain.Snapshot; the format is
// private to this package and any matching pair of Save/Load built with
// the same package version, never parsed or produced by hand.
package persist
