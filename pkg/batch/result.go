/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"fmt"

	"github.com/NVIDIA/cookbook/pkg/header"
	"github.com/NVIDIA/cookbook/pkg/plan"
	"github.com/NVIDIA/cookbook/pkg/recipe"
)

// Result records how far a single Run invocation got.
type Result struct {
	// JobID and Title identify the job the run belonged to.
	JobID string `json:"jobId" yaml:"jobId"`
	Title string `json:"title" yaml:"title"`

	// Total is the job's operation count.
	Total int `json:"total" yaml:"total"`

	// Completed counts operations this invocation executed
	// successfully.
	Completed int `json:"completed" yaml:"completed"`

	// Position is the job position after the run; operations below it
	// are complete across all invocations.
	Position int `json:"position" yaml:"position"`

	// Done reports whether the whole job has finished.
	Done bool `json:"done" yaml:"done"`

	// FailedIndex is the index of the failed operation, or -1.
	FailedIndex int `json:"failedIndex" yaml:"failedIndex"`

	// FailedOperation is the operation that stopped the run, if any.
	FailedOperation *plan.Operation `json:"failedOperation,omitempty" yaml:"failedOperation,omitempty"`
}

// Failed reports whether the run stopped on an operation failure.
func (r *Result) Failed() bool {
	return r.FailedIndex >= 0
}

// Summary renders a one-line account of the run.
func (r *Result) Summary() string {
	if r.Failed() {
		return fmt.Sprintf("%s: failed at operation %d of %d (%s), %d completed",
			r.Title, r.FailedIndex+1, r.Total, r.FailedOperation.Description(), r.Position)
	}
	if !r.Done {
		return fmt.Sprintf("%s: %d of %d operations completed, more remain",
			r.Title, r.Position, r.Total)
	}
	return fmt.Sprintf("%s: all %d operations completed", r.Title, r.Total)
}

// RunReport is the serializable artifact describing a run, suitable for
// writing through pkg/serializer.
type RunReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Result Result `json:"result" yaml:"result"`

	// Error is the run error message, empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewRunReport wraps a result into an artifact. version stamps the
// generator version; runErr is the error Run returned, if any.
func NewRunReport(version string, res *Result, runErr error) *RunReport {
	rep := &RunReport{Result: *res}
	if runErr != nil {
		rep.Error = runErr.Error()
	}
	rep.Init(header.KindRunReport, recipe.APIVersion, version)
	return rep
}
