// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import "errors"

// ExitCoder is implemented by the non-fatal issues a job run can surface;
// cmd/morph and cmd/coexpr use it to compute the process exit code (spec
// §6 exit codes 0/1/2/3) without hard-coding the mapping in main.
type ExitCoder interface {
	error
	ExitCode() int
}

// ErrJobSkipped is logged and returned (never fatal) when a (matrix,
// clustering, GOI) job is skipped per spec §7 kind 3: the GOI matched
// fewer than 5 genes, a clustering had no overlap with its matrix, or a
// matrix had no baits present.
var ErrJobSkipped = errors.New("driver: job skipped")

// jobIssue is a non-fatal, exit-code-bearing problem encountered while
// running a job: an unresolvable GOI/bait gene name (spec §6 exit codes 2
// and 3).
type jobIssue struct {
	msg  string
	code int
}

func (e *jobIssue) Error() string { return e.msg }
func (e *jobIssue) ExitCode() int { return e.code }

// invalidGeneIssue reports a GOI/bait name that could not be resolved to
// any gene at all (spec §6 exit code 2, "invalid gene in GOI").
func invalidGeneIssue(name string) error {
	return &jobIssue{msg: "invalid gene in GOI/baits list: " + name, code: 2}
}

// unsupportedVariantIssue reports a GOI/bait name that resolved to a
// gene with an unsupported splice variant (spec §6 exit code 3).
func unsupportedVariantIssue(name string) error {
	return &jobIssue{msg: "unsupported splice variant in GOI/baits list: " + name, code: 3}
}

// HighestExitCode reduces a slice of issues (as returned by RunMorphJobList /
// RunCoExprJob) to the single exit code a run should report: the largest
// ExitCoder code present, or 0 if issues is empty or carries no
// ExitCoder. A fatal error (returned separately from the Run functions)
// always takes priority over this and maps to exit code 1.
func HighestExitCode(issues []error) int {
	code := 0
	for _, issue := range issues {
		if ec, ok := issue.(ExitCoder); ok && ec.ExitCode() > code {
			code = ec.ExitCode()
		}
	}
	return code
}
