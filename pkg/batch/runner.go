/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/NVIDIA/cookbook/pkg/errors"
	"github.com/NVIDIA/cookbook/pkg/plan"
)

// Executor applies a single operation to a target. Implementations must
// be idempotent: the runner may re-run an operation after an
// interrupted job resumes.
type Executor interface {
	Execute(ctx context.Context, op plan.Operation) error
}

// Runner executes a job's operations strictly in sequence, resuming
// from the job's position. It never runs two operations concurrently:
// later operations may depend on state established by earlier ones.
type Runner struct {
	exec      Executor
	sink      ProgressSink
	maxPerRun int
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithProgressSink directs per-operation progress to sink.
func WithProgressSink(sink ProgressSink) RunnerOption {
	return func(r *Runner) {
		if sink != nil {
			r.sink = sink
		}
	}
}

// WithMaxPerRun bounds how many operations a single Run call executes.
// The runner returns control with Result.Done == false once the bound
// is reached; re-invoking Run continues from the job position. Use this
// in drivers with a per-invocation time budget.
func WithMaxPerRun(n int) RunnerOption {
	return func(r *Runner) {
		r.maxPerRun = n
	}
}

// NewRunner creates a Runner over the given executor.
func NewRunner(exec Executor, opts ...RunnerOption) *Runner {
	r := &Runner{
		exec: exec,
		sink: NopSink{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes job's operations from its current position. On an
// operation failure the run stops immediately, the job position stays
// at the failed operation, and the returned error carries the
// OPERATION_FAILED cause inside a BATCH_FAILED wrapper. The Result is
// returned in all cases and records how far the run got.
func (r *Runner) Run(ctx context.Context, job *Job) (*Result, error) {
	if job == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "job is nil")
	}
	total := len(job.Operations)
	if job.Position < 0 || job.Position > total {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("job position %d out of range [0, %d]", job.Position, total),
			map[string]any{"job": job.ID})
	}

	start := time.Now()
	defer func() {
		runDuration.Observe(time.Since(start).Seconds())
	}()

	res := &Result{
		JobID:       job.ID,
		Title:       job.Title,
		Total:       total,
		Position:    job.Position,
		FailedIndex: -1,
	}

	executed := 0
	for job.Position < total {
		if r.maxPerRun > 0 && executed >= r.maxPerRun {
			break
		}
		if err := ctx.Err(); err != nil {
			return res, errors.WrapWithContext(errors.ErrCodeTimeout,
				fmt.Sprintf("run canceled before operation %d of %d", job.Position+1, total), err,
				map[string]any{"job": job.ID})
		}

		idx := job.Position
		op := job.Operations[idx]
		if err := r.exec.Execute(ctx, op); err != nil {
			operationsTotal.WithLabelValues("failed").Inc()
			res.FailedIndex = idx
			res.FailedOperation = &op
			r.sink.Report(Event{
				JobID:       job.ID,
				Index:       idx,
				Total:       total,
				Description: op.Description(),
				Recipe:      op.Recipe,
				Err:         err,
			})
			opErr := errors.WrapWithContext(errors.ErrCodeOperationFailed,
				op.Description(), err,
				map[string]any{"recipe": op.Recipe})
			return res, errors.WrapWithContext(errors.ErrCodeBatchFailed,
				fmt.Sprintf("operation %d of %d failed", idx+1, total), opErr,
				map[string]any{"job": job.ID, "index": idx})
		}

		job.Position++
		executed++
		res.Position = job.Position
		res.Completed = executed
		operationsTotal.WithLabelValues("completed").Inc()
		r.sink.Report(Event{
			JobID:       job.ID,
			Index:       idx,
			Total:       total,
			Description: op.Description(),
			Recipe:      op.Recipe,
		})
	}

	res.Done = job.Done()
	return res, nil
}
