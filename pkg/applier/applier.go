/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package applier ties loading, expansion, and job construction
// together: it turns recipe names into plans and batch jobs the caller
// can execute.
package applier

import (
	"context"
	"log/slog"

	"github.com/NVIDIA/cookbook/pkg/batch"
	"github.com/NVIDIA/cookbook/pkg/errors"
	"github.com/NVIDIA/cookbook/pkg/plan"
)

// Applier is the orchestration entry point. It builds plans and jobs
// but never executes them; batch lifecycle stays with the caller.
type Applier struct {
	expander *plan.Expander
	version  string
}

// Option customizes an Applier.
type Option func(*Applier)

// WithVersion stamps generated plans with the given version.
func WithVersion(v string) Option {
	return func(a *Applier) {
		if v != "" {
			a.version = v
		}
	}
}

// New creates an Applier over the given loader.
func New(loader plan.Loader, opts ...Option) *Applier {
	a := &Applier{
		expander: plan.NewExpander(loader),
		version:  "dev",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Plan loads and expands the named recipes, in order, into a single
// plan. Loader and expander errors abort the whole call; there is no
// partial plan.
func (a *Applier) Plan(ctx context.Context, names ...string) (*plan.Plan, error) {
	ops, err := a.expander.Expand(ctx, names...)
	if err != nil {
		return nil, err
	}
	p := plan.New(a.version, names, ops)
	slog.Debug("plan built",
		"recipes", len(names),
		"operations", p.Total())
	return p, nil
}

// Job builds a ready-to-run batch job for the named recipes.
func (a *Applier) Job(ctx context.Context, names ...string) (*batch.Job, error) {
	p, err := a.Plan(ctx, names...)
	if err != nil {
		return nil, err
	}
	return batch.NewJob(p.Title(), p.Operations), nil
}

// Compose expands the named recipes and appends their operations to the
// caller's job, after whatever operations the job already carries. On
// error the job is left exactly as it was.
func (a *Applier) Compose(ctx context.Context, job *batch.Job, names ...string) error {
	if job == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "job is nil")
	}
	ops, err := a.expander.Expand(ctx, names...)
	if err != nil {
		return err
	}
	job.Operations = append(job.Operations, ops...)
	slog.Debug("job composed",
		"job", job.ID,
		"recipes", len(names),
		"operations", len(job.Operations))
	return nil
}
