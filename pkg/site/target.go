/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package site

import (
	"context"
	"fmt"

	"github.com/NVIDIA/cookbook/pkg/batch"
	"github.com/NVIDIA/cookbook/pkg/errors"
	"github.com/NVIDIA/cookbook/pkg/plan"
)

// Target is the site a plan applies to. Implementations must make every
// method idempotent: the batch runner may replay an operation when a
// job resumes after an interruption.
type Target interface {
	// EnableExtension turns the named extension on. Enabling an
	// already-enabled extension is a no-op.
	EnableExtension(ctx context.Context, name string) error

	// ImportConfig writes one named configuration object. Importing
	// the same payload again is a no-op.
	ImportConfig(ctx context.Context, name string, data map[string]any) error

	// RunAction runs a named post-apply action.
	RunAction(ctx context.Context, name string, args map[string]any) error
}

// NewExecutor adapts a Target to the batch executor contract.
func NewExecutor(target Target) batch.Executor {
	return &executor{target: target}
}

type executor struct {
	target Target
}

func (e *executor) Execute(ctx context.Context, op plan.Operation) error {
	switch op.Kind {
	case plan.KindEnableExtension:
		return e.target.EnableExtension(ctx, op.Name)
	case plan.KindImportConfig:
		return e.target.ImportConfig(ctx, op.Name, op.Config)
	case plan.KindRunAction:
		return e.target.RunAction(ctx, op.Name, op.Args)
	default:
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown operation kind %q", op.Kind),
			map[string]any{"operation": op.Name})
	}
}
