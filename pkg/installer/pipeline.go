/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package installer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NVIDIA/cookbook/pkg/errors"
)

// Stage is one named step of an install pipeline. IDs are stable
// identifiers other stages are inserted relative to.
type Stage struct {
	ID  string
	Run func(ctx context.Context, state *InstallState) error
}

// Pipeline is an explicitly ordered sequence of stages. Callers
// assemble it directly, inserting stages before or after named
// anchors; there is no ambient hook registry to alter it from afar.
type Pipeline struct {
	stages []Stage
}

// NewPipeline builds a pipeline from the given stages.
func NewPipeline(stages ...Stage) (*Pipeline, error) {
	p := &Pipeline{}
	for _, s := range stages {
		if err := p.Append(s); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Append adds a stage at the end.
func (p *Pipeline) Append(s Stage) error {
	if err := p.check(s); err != nil {
		return err
	}
	p.stages = append(p.stages, s)
	return nil
}

// InsertBefore adds a stage immediately before the stage with the given
// ID.
func (p *Pipeline) InsertBefore(id string, s Stage) error {
	return p.insert(id, s, 0)
}

// InsertAfter adds a stage immediately after the stage with the given
// ID.
func (p *Pipeline) InsertAfter(id string, s Stage) error {
	return p.insert(id, s, 1)
}

// Remove deletes the stage with the given ID. Pipelines whose last
// stage removes the installer itself use this to drop stages that must
// not run twice.
func (p *Pipeline) Remove(id string) error {
	idx := p.index(id)
	if idx < 0 {
		return errors.New(errors.ErrCodeNotFound,
			fmt.Sprintf("stage %q not found", id))
	}
	p.stages = append(p.stages[:idx], p.stages[idx+1:]...)
	return nil
}

// StageIDs returns the stage identifiers in execution order.
func (p *Pipeline) StageIDs() []string {
	out := make([]string, len(p.stages))
	for i, s := range p.stages {
		out[i] = s.ID
	}
	return out
}

// Run executes the stages in order, stopping at the first failure.
func (p *Pipeline) Run(ctx context.Context, state *InstallState) error {
	for i, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeTimeout,
				fmt.Sprintf("install canceled before stage %q", s.ID), err)
		}
		slog.Debug("running install stage",
			"stage", s.ID,
			"step", fmt.Sprintf("%d/%d", i+1, len(p.stages)))
		if s.Run == nil {
			continue
		}
		if err := s.Run(ctx, state); err != nil {
			return errors.WrapWithContext(errors.ErrCodeOperationFailed,
				fmt.Sprintf("install stage %q failed", s.ID), err,
				map[string]any{"stage": s.ID})
		}
	}
	return nil
}

func (p *Pipeline) insert(anchor string, s Stage, offset int) error {
	if err := p.check(s); err != nil {
		return err
	}
	idx := p.index(anchor)
	if idx < 0 {
		return errors.New(errors.ErrCodeNotFound,
			fmt.Sprintf("stage %q not found", anchor))
	}
	at := idx + offset
	p.stages = append(p.stages, Stage{})
	copy(p.stages[at+1:], p.stages[at:])
	p.stages[at] = s
	return nil
}

func (p *Pipeline) check(s Stage) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "stage id is empty")
	}
	if p.index(s.ID) >= 0 {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("stage %q already present", s.ID))
	}
	return nil
}

func (p *Pipeline) index(id string) int {
	for i, s := range p.stages {
		if s.ID == id {
			return i
		}
	}
	return -1
}
