/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package installer

import (
	"context"
	"fmt"

	"github.com/NVIDIA/cookbook/pkg/errors"
	"github.com/NVIDIA/cookbook/pkg/validator"
)

// StageCheckRequirements is the identifier of the requirements-check
// stage.
const StageCheckRequirements = "check-requirements"

// RequirementsStage builds the stage that gates the install on the
// host requirements declared by the chosen recipes and everything they
// compose. A failed requirement aborts the pipeline before anything is
// applied; requirements that cannot be resolved on this host are
// logged by the validator and do not block.
func RequirementsStage(loader validator.Loader, props validator.Properties) Stage {
	return Stage{
		ID: StageCheckRequirements,
		Run: func(ctx context.Context, state *InstallState) error {
			if len(state.Recipes) == 0 {
				return nil
			}
			defs, err := validator.CollectDefinitions(ctx, loader, state.Recipes...)
			if err != nil {
				return err
			}
			result, err := validator.New().Validate(ctx, defs, props)
			if err != nil {
				return err
			}
			if result.Summary.Status != validator.ValidationStatusFail {
				return nil
			}
			for _, rv := range result.Results {
				if rv.Status != validator.RequirementStatusFailed {
					continue
				}
				return errors.NewWithContext(errors.ErrCodeOperationFailed,
					fmt.Sprintf("recipe %q requires %s %s, host has %s",
						rv.Recipe, rv.Name, rv.Expected, rv.Actual),
					map[string]any{"failed": result.Summary.Failed})
			}
			return nil
		},
	}
}
