/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/cookbook/pkg/applier"
	"github.com/NVIDIA/cookbook/pkg/batch"
	"github.com/NVIDIA/cookbook/pkg/defaults"
	"github.com/NVIDIA/cookbook/pkg/installer"
	"github.com/NVIDIA/cookbook/pkg/serializer"
	"github.com/NVIDIA/cookbook/pkg/site"
	"github.com/NVIDIA/cookbook/pkg/validator"
)

// applyJobFileName is where an unfinished job is saved under the site
// directory so a later invocation can resume it.
const applyJobFileName = "apply.job.yaml"

// applyCmdOptions holds parsed options for the apply command.
type applyCmdOptions struct {
	recipes        []string
	siteDir        string
	siteName       string
	dryRun         bool
	step           int
	nonInteractive bool
	properties     validator.Properties
	outputPath     string
	outputFormat   serializer.Format
}

// parseApplyCmdOptions parses and validates command options.
func parseApplyCmdOptions(cmd *cli.Command) (*applyCmdOptions, error) {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return nil, err
	}

	props, err := parseProperties(cmd.StringSlice("property"))
	if err != nil {
		return nil, err
	}

	opts := &applyCmdOptions{
		recipes:        cmd.StringSlice("recipe"),
		siteDir:        cmd.String("site"),
		siteName:       cmd.String("site-name"),
		dryRun:         cmd.Bool("dry-run"),
		step:           int(cmd.Int("step")),
		nonInteractive: cmd.Bool("non-interactive"),
		properties:     props,
		outputPath:     cmd.String("output"),
		outputFormat:   outFormat,
	}

	if len(opts.recipes) == 0 {
		return nil, fmt.Errorf("at least one --recipe is required")
	}
	if opts.step < 0 {
		return nil, fmt.Errorf("--step must be positive, got %d", opts.step)
	}
	if !opts.dryRun && opts.siteDir == "" {
		return nil, fmt.Errorf("--site is required unless --dry-run is set")
	}

	if opts.siteName == "" {
		if opts.siteDir != "" {
			opts.siteName = filepath.Base(opts.siteDir)
		} else {
			opts.siteName = "preview"
		}
	}

	return opts, nil
}

func applyCmd() *cli.Command {
	return &cli.Command{
		Name:                  "apply",
		EnableShellCompletion: true,
		Usage:                 "Apply recipes to a site",
		Description: `Loads the named recipes from the cookbook, expands their composition
into a flat ordered operation plan, and applies the plan to a site
directory. The combined operation list runs strictly in sequence and
stops at the first failure.

An apply is resumable: the job position is saved under the site
directory after every invocation, so an interrupted or failed apply
re-run with the same recipes continues where it left off instead of
starting over. Operations are idempotent, so a re-run of an already
applied operation is harmless.

Host requirements declared by the recipes (and everything they
compose) are checked before anything is applied; a failed requirement
aborts the apply.

# Examples

Apply a recipe stack to a site:
  cookctl apply -r base -r corp/blog --cookbook ./cookbook --site ./site

Preview without touching the site directory:
  cookctl apply -r corp/blog --cookbook ./cookbook --dry-run

Run one operation at a time (resume with the same command):
  cookctl apply -r corp/blog --cookbook ./cookbook --site ./site --step 1

Write the run report to a file as JSON:
  cookctl apply -r base --site ./site -o report.json --format json`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "recipe",
				Aliases: []string{"r"},
				Usage:   "Recipe name to apply, in order (can be repeated)",
			},
			&cli.StringFlag{
				Name:    "site",
				Aliases: []string{"s"},
				Usage:   "Site directory the operations apply to",
			},
			&cli.StringFlag{
				Name:  "site-name",
				Usage: "Human-readable site name (default: site directory base name)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Run the plan against an in-memory recorder, touching nothing on disk",
			},
			&cli.IntFlag{
				Name:  "step",
				Usage: "Run at most N operations, save the position, and stop (0 runs to completion)",
			},
			&cli.BoolFlag{
				Name:  "non-interactive",
				Usage: "Replace console progress with structured log events",
			},
			&cli.StringSliceFlag{
				Name:  "property",
				Usage: "Override a host property for requirement checks (format: name=value, can be repeated)",
			},
			cookbookFlag,
			cacheFlag,
			cacheDirFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parseApplyCmdOptions(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLIApplyTimeout)
			defer cancel()

			cookbook, err := openCookbook(cmd)
			if err != nil {
				return err
			}
			loader, err := newLoader(cmd, cookbook)
			if err != nil {
				return err
			}
			a := applier.New(loader, applier.WithVersion(version))

			target, err := applyTarget(opts)
			if err != nil {
				return err
			}

			slog.Info("applying recipes",
				"site", opts.siteName,
				"recipes", opts.recipes,
				"dryRun", opts.dryRun)

			props := validator.HostProperties(version).Merge(opts.properties)
			pipe, err := installer.NewPipeline(
				installer.RequirementsStage(loader, props),
			)
			if err != nil {
				return err
			}
			if err := pipe.Append(applyRecipesStage(a, target, opts)); err != nil {
				return err
			}

			state := &installer.InstallState{
				SiteName:    opts.siteName,
				Recipes:     opts.recipes,
				Interactive: !opts.nonInteractive,
			}
			return pipe.Run(ctx, state)
		},
	}
}

// applyTarget picks where operations land: the site store, or an
// in-memory recorder for --dry-run.
func applyTarget(opts *applyCmdOptions) (site.Target, error) {
	if opts.dryRun {
		return site.NewRecorder(), nil
	}
	store, err := site.Open(opts.siteDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open site %q: %w", opts.siteDir, err)
	}
	return store, nil
}

// applyRecipesStage is the CLI variant of installer.RecipesStage: it
// persists the job position under the site directory so an interrupted
// or step-bounded apply resumes where it left off, and writes a run
// report artifact after every invocation.
func applyRecipesStage(a *applier.Applier, target site.Target, opts *applyCmdOptions) installer.Stage {
	return installer.Stage{
		ID: installer.StageApplyRecipes,
		Run: func(ctx context.Context, state *installer.InstallState) error {
			job, err := loadOrBuildJob(ctx, a, opts)
			if err != nil {
				return err
			}

			runnerOpts := []batch.RunnerOption{
				batch.WithProgressSink(progressSink(state.Interactive)),
			}
			if opts.step > 0 {
				runnerOpts = append(runnerOpts, batch.WithMaxPerRun(opts.step))
			}

			res, runErr := batch.NewRunner(site.NewExecutor(target), runnerOpts...).Run(ctx, job)
			if res == nil {
				return runErr
			}

			if err := persistJob(opts, job, res); err != nil {
				slog.Warn("failed to persist job position", "error", err)
			}
			if err := serializeTo(opts.outputFormat, opts.outputPath,
				batch.NewRunReport(version, res, runErr)); err != nil {
				slog.Warn("failed to write run report", "error", err)
			}
			fmt.Fprintln(os.Stderr, res.Summary())
			return runErr
		},
	}
}

// loadOrBuildJob builds a fresh job from the requested recipes or, when
// an unfinished job for the same recipes is saved under the site
// directory, resumes it. A saved job for a different recipe set is
// never silently discarded.
func loadOrBuildJob(ctx context.Context, a *applier.Applier, opts *applyCmdOptions) (*batch.Job, error) {
	fresh, err := a.Job(ctx, opts.recipes...)
	if err != nil {
		return nil, err
	}
	if opts.dryRun {
		return fresh, nil
	}

	path := filepath.Join(opts.siteDir, applyJobFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fresh, nil
		}
		return nil, fmt.Errorf("failed to read saved job %q: %w", path, err)
	}

	saved, err := serializer.FromFile[batch.Job](path)
	if err != nil {
		return nil, fmt.Errorf("saved job at %q is unreadable: %w", path, err)
	}
	if saved.Title != fresh.Title {
		return nil, fmt.Errorf("site has an unfinished job %q; re-run with the same recipes to resume, or remove %s",
			saved.Title, path)
	}
	if saved.Done() {
		return fresh, nil
	}

	// Resume only when the re-expanded operations line up with the
	// saved ones; a changed cookbook restarts from the top rather than
	// guessing an offset into a different plan.
	same := len(saved.Operations) == len(fresh.Operations)
	if same {
		for i := range fresh.Operations {
			if fresh.Operations[i].Key() != saved.Operations[i].Key() {
				same = false
				break
			}
		}
	}
	if !same {
		slog.Warn("cookbook changed since the job was saved; restarting from the first operation",
			"saved", len(saved.Operations),
			"current", len(fresh.Operations))
		return fresh, nil
	}

	fresh.ID = saved.ID
	fresh.Position = saved.Position
	slog.Info("resuming saved job",
		"job", fresh.ID,
		"position", fresh.Position,
		"total", len(fresh.Operations))
	return fresh, nil
}

// persistJob saves the job position for the next invocation, or clears
// the saved job once it completes. Dry runs never touch the site
// directory.
func persistJob(opts *applyCmdOptions, job *batch.Job, res *batch.Result) error {
	if opts.dryRun {
		return nil
	}
	path := filepath.Join(opts.siteDir, applyJobFileName)
	if res.Done {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	data, err := yaml.Marshal(job)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// progressSink picks the per-operation progress surface: a throttled
// console line for humans, structured log events otherwise.
func progressSink(interactive bool) batch.ProgressSink {
	if interactive {
		return batch.NewConsoleSink(os.Stderr, time.Second)
	}
	return batch.NewSlogSink(slog.Default())
}
