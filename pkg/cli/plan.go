/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cookbook/pkg/applier"
	"github.com/NVIDIA/cookbook/pkg/defaults"
)

func planCmd() *cli.Command {
	return &cli.Command{
		Name:                  "plan",
		EnableShellCompletion: true,
		Usage:                 "Expand recipes into an ordered operation plan without applying it",
		Description: `Loads the named recipes from the cookbook, resolves their composition
depth-first, and prints the resulting flat operation plan. Nothing is
applied; the plan shows exactly what an apply with the same recipes
would run, in order.

# Examples

Print the plan for a recipe stack:
  cookctl plan -r base -r corp/blog --cookbook ./cookbook

Write the plan to a file as JSON:
  cookctl plan -r corp/blog --cookbook ./cookbook -o plan.json --format json`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "recipe",
				Aliases: []string{"r"},
				Usage:   "Recipe name to include, in order (can be repeated)",
			},
			cookbookFlag,
			cacheFlag,
			cacheDirFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			names := cmd.StringSlice("recipe")
			if len(names) == 0 {
				return fmt.Errorf("at least one --recipe is required")
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLIPlanTimeout)
			defer cancel()

			cookbook, err := openCookbook(cmd)
			if err != nil {
				return err
			}
			loader, err := newLoader(cmd, cookbook)
			if err != nil {
				return err
			}

			p, err := applier.New(loader, applier.WithVersion(version)).Plan(ctx, names...)
			if err != nil {
				return fmt.Errorf("failed to build plan: %w", err)
			}

			slog.Info("plan built",
				"recipes", names,
				"operations", p.Total())

			return serializeTo(outFormat, cmd.String("output"), p)
		},
	}
}
