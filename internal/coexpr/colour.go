// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coexpr

import "crypto/md5"

// Colour deterministically derives an RGB triple for a bait-group
// identifier from the first 3 bytes of its MD5 hash, mirroring the
// teacher's own use of crypto/md5 for deterministic term hashing.
// Equal bait-group identifiers always produce the same colour; this
// stands in for the palette-generation third-party snippet the original
// left commented out.
func Colour(baitGroupID string) [3]byte {
	sum := md5.Sum([]byte(baitGroupID))
	return [3]byte{sum[0], sum[1], sum[2]}
}
