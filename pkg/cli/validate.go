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
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/cookbook/pkg/defaults"
	"github.com/NVIDIA/cookbook/pkg/plan"
	"github.com/NVIDIA/cookbook/pkg/recipe"
	"github.com/NVIDIA/cookbook/pkg/validator"
)

// validateConcurrency bounds the schema/composition fan-out.
const validateConcurrency = 4

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Check recipe definitions and host requirements",
		Description: `Checks the named recipes (or the whole cookbook with --all) on three
levels: each definition parses against the recipe schema, each
composition expands without cycles or missing references, and every
declared host requirement is evaluated against this host's properties.

Requirement failures are reported in the result artifact; they only
fail the command when --fail-on-error is set, so the same invocation
works for both inspection and CI gating.

# Examples

Validate two recipes:
  cookctl validate -r base -r corp/blog --cookbook ./cookbook

Validate the whole cookbook and fail on unmet requirements:
  cookctl validate --all --cookbook ./cookbook --fail-on-error

Evaluate requirements as if the host had a different property:
  cookctl validate -r corp/blog --property platform.os=linux`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "recipe",
				Aliases: []string{"r"},
				Usage:   "Recipe name to validate (can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Validate every recipe in the cookbook",
			},
			&cli.StringSliceFlag{
				Name:  "property",
				Usage: "Override a host property (format: name=value, can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with an error when any requirement fails",
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
			overrides, err := parseProperties(cmd.StringSlice("property"))
			if err != nil {
				return err
			}

			names := cmd.StringSlice("recipe")
			all := cmd.Bool("all")
			if all && len(names) > 0 {
				return fmt.Errorf("--all and --recipe are mutually exclusive")
			}
			if !all && len(names) == 0 {
				return fmt.Errorf("at least one --recipe is required (or use --all)")
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
			if all {
				if names, err = recipe.Names(cookbook); err != nil {
					return err
				}
				if len(names) == 0 {
					return fmt.Errorf("cookbook %q holds no recipes", cookbook.Source())
				}
			}

			slog.Info("validating recipes",
				"cookbook", cookbook.Source(),
				"recipes", len(names))

			// Schema and composition checks per recipe. Each name
			// expands independently, so these fan out.
			expander := plan.NewExpander(loader)
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(validateConcurrency)
			for _, n := range names {
				n := n
				g.Go(func() error {
					if _, err := loader.Load(gctx, n); err != nil {
						return fmt.Errorf("recipe %q failed schema validation: %w", n, err)
					}
					if _, err := expander.Expand(gctx, n); err != nil {
						return fmt.Errorf("recipe %q failed composition validation: %w", n, err)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			// Requirement checks run over the full composed set.
			defs, err := validator.CollectDefinitions(ctx, loader, names...)
			if err != nil {
				return err
			}
			props := validator.HostProperties(version).Merge(overrides)
			result, err := validator.New(validator.WithVersion(version)).Validate(ctx, defs, props)
			if err != nil {
				return err
			}
			result.Cookbook = cookbook.Source()

			slog.Info("validation complete",
				"status", result.Summary.Status,
				"passed", result.Summary.Passed,
				"failed", result.Summary.Failed,
				"skipped", result.Summary.Skipped,
				"duration", result.Summary.Duration)

			if err := serializeTo(outFormat, cmd.String("output"), result); err != nil {
				return err
			}

			if cmd.Bool("fail-on-error") && result.Summary.Status == validator.ValidationStatusFail {
				return fmt.Errorf("validation failed: %d requirement(s) did not pass", result.Summary.Failed)
			}
			return nil
		},
	}
}
