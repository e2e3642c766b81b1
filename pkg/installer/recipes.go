/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package installer

import (
	"context"

	"github.com/NVIDIA/cookbook/pkg/applier"
	"github.com/NVIDIA/cookbook/pkg/batch"
	"github.com/NVIDIA/cookbook/pkg/site"
)

// StageApplyRecipes is the identifier of the recipe-application stage.
// Hosts insert their own stages relative to it.
const StageApplyRecipes = "apply-recipes"

// RecipesStage builds the stage that applies the state's chosen
// recipes to the target. The stage plans all recipes first, then runs
// the combined job sequentially; sink receives per-operation progress.
func RecipesStage(a *applier.Applier, target site.Target, sink batch.ProgressSink) Stage {
	return Stage{
		ID: StageApplyRecipes,
		Run: func(ctx context.Context, state *InstallState) error {
			if len(state.Recipes) == 0 {
				return nil
			}
			job, err := a.Job(ctx, state.Recipes...)
			if err != nil {
				return err
			}
			opts := []batch.RunnerOption{}
			if sink != nil {
				opts = append(opts, batch.WithProgressSink(sink))
			}
			_, err = batch.NewRunner(site.NewExecutor(target), opts...).Run(ctx, job)
			return err
		},
	}
}
