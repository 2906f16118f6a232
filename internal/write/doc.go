// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package write renders MORPH ranking results and CoExpr networks to
// their external file formats (spec §6): plain-text and YAML MORPH
// rankings, and the four Cytoscape network files.
package write
