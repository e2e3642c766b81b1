/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"github.com/NVIDIA/cookbook/pkg/plan"
	"github.com/google/uuid"
)

// Job is an ordered sequence of operations plus the position of the
// next operation to run. Position is the only field the runner
// mutates; everything else is fixed at construction.
type Job struct {
	// ID uniquely identifies the job across runs and processes.
	ID string `json:"id" yaml:"id"`

	// Title is a human-readable description of the whole job.
	Title string `json:"title" yaml:"title"`

	// Operations is the ordered work list.
	Operations []plan.Operation `json:"operations" yaml:"operations"`

	// Position indexes the next operation to run. Operations below it
	// are complete. A job is done when Position == len(Operations).
	Position int `json:"position" yaml:"position"`
}

// NewJob creates a job over the given operations, starting at the
// beginning.
func NewJob(title string, ops []plan.Operation) *Job {
	return &Job{
		ID:         uuid.NewString(),
		Title:      title,
		Operations: ops,
	}
}

// Remaining returns how many operations have not run yet.
func (j *Job) Remaining() int {
	if j.Position >= len(j.Operations) {
		return 0
	}
	return len(j.Operations) - j.Position
}

// Done reports whether every operation has completed.
func (j *Job) Done() bool {
	return j.Position >= len(j.Operations)
}
