// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config decodes and validates the YAML job descriptions that
// drive a build/MORPH/CoExpr run (spec §6): the database-build
// description consumed by the build command, the MORPH job list
// consumed by cmd/morph, and the CoExpr job consumed by cmd/coexpr.
package config
