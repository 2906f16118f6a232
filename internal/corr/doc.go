// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package corr computes rectangular Pearson correlation blocks between all
// rows of an expression matrix and a chosen subset of those rows, using a
// single left-to-right Welford-style running pass rather than the naive
// two-pass or sum-of-products forms.
package corr
