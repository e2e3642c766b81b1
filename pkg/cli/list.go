/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cookbook/pkg/defaults"
	"github.com/NVIDIA/cookbook/pkg/recipe"
)

// RecipeRow is one cookbook recipe in the list output.
type RecipeRow struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Recipes     int    `json:"recipes" yaml:"recipes"`
	Extensions  int    `json:"extensions" yaml:"extensions"`
	Configs     int    `json:"configs" yaml:"configs"`
	Actions     int    `json:"actions" yaml:"actions"`
}

// RecipeListing is the list command output.
type RecipeListing struct {
	Cookbook string      `json:"cookbook" yaml:"cookbook"`
	Count    int         `json:"count" yaml:"count"`
	Recipes  []RecipeRow `json:"recipes" yaml:"recipes"`
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:                  "list",
		EnableShellCompletion: true,
		Usage:                 "List the recipes a cookbook provides",
		Description: `Walks the cookbook directory and lists every recipe it holds, with a
short summary of what each one composes. A recipe whose definition
fails to parse is still listed by name so the cookbook's contents are
always visible.

# Examples

List recipes in the current directory:
  cookctl list

List recipes in a specific cookbook as a table:
  cookctl list --cookbook ./cookbook --format table`,
		Flags: []cli.Flag{
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

			names, err := recipe.Names(cookbook)
			if err != nil {
				return err
			}

			listing := &RecipeListing{
				Cookbook: cookbook.Source(),
				Count:    len(names),
				Recipes:  make([]RecipeRow, 0, len(names)),
			}
			for _, n := range names {
				row := RecipeRow{Name: n}
				def, err := loader.Load(ctx, n)
				if err != nil {
					// Still listed; the name alone tells the user the
					// recipe exists and needs fixing.
					slog.Warn("failed to load recipe", "recipe", n, "error", err)
					listing.Recipes = append(listing.Recipes, row)
					continue
				}
				row.DisplayName = def.DisplayName()
				row.Description = def.Metadata.Description
				row.Recipes = len(def.Spec.Recipes)
				row.Extensions = len(def.Spec.Extensions)
				row.Configs = len(def.Spec.Configs)
				row.Actions = len(def.Spec.Actions)
				listing.Recipes = append(listing.Recipes, row)
			}

			return serializeTo(outFormat, cmd.String("output"), listing)
		},
	}
}
