/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/cookbook/pkg/defaults"
	cberrors "github.com/NVIDIA/cookbook/pkg/errors"
	"github.com/NVIDIA/cookbook/pkg/recipe"
)

// warmConcurrency bounds the cache warm fan-out.
const warmConcurrency = 4

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:                  "cache",
		EnableShellCompletion: true,
		Usage:                 "Manage the recipe definition cache",
		Description: `The definition cache keeps parsed recipe definitions keyed by a
fingerprint of their source, so repeated loads of an unchanged recipe
skip the parse. Commands opt into it with --cache; these subcommands
manage the cache directory itself.`,
		Commands: []*cli.Command{
			cacheWarmCmd(),
			cachePurgeCmd(),
		},
	}
}

func cacheWarmCmd() *cli.Command {
	return &cli.Command{
		Name:                  "warm",
		EnableShellCompletion: true,
		Usage:                 "Load every cookbook recipe into the definition cache",
		Description: `Loads every recipe the cookbook holds with caching enabled, then
verifies each parsed definition actually reached the cache. Unlike a
regular load, where a failed cache write only logs a warning, warm
reports it as an error so CI can rely on a warmed cache.

# Examples

Warm the default per-user cache:
  cookctl cache warm --cookbook ./cookbook

Warm a dedicated cache directory:
  cookctl cache warm --cookbook ./cookbook --cache-dir /var/cache/cookctl`,
		Flags: []cli.Flag{
			cookbookFlag,
			cacheDirFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithTimeout(ctx, defaults.CLIPlanTimeout)
			defer cancel()

			cookbook, err := openCookbook(cmd)
			if err != nil {
				return err
			}
			dir, err := cacheDir(cmd)
			if err != nil {
				return err
			}
			cache, err := recipe.OpenCache(dir)
			if err != nil {
				return err
			}
			loader := recipe.NewLoader(cookbook, recipe.WithCache(cache))

			names, err := recipe.Names(cookbook)
			if err != nil {
				return err
			}

			// Load everything first; a broken recipe must not stop the
			// rest of the cookbook from warming.
			loadErrs := make([]error, len(names))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(warmConcurrency)
			for i, n := range names {
				i, n := i, n
				g.Go(func() error {
					_, loadErrs[i] = loader.Load(gctx, n)
					return nil
				})
			}
			_ = g.Wait()

			warmed := 0
			failed := 0
			for i, n := range names {
				if loadErrs[i] != nil {
					failed++
					slog.Warn("failed to load recipe", "recipe", n, "error", loadErrs[i])
					continue
				}
				if err := verifyCached(cookbook, cache, n); err != nil {
					failed++
					slog.Warn("failed to warm recipe", "recipe", n, "error", err)
					continue
				}
				warmed++
			}

			fmt.Printf("warmed %d of %d recipes (cache: %s)\n", warmed, len(names), cache.Dir())
			if failed > 0 {
				return fmt.Errorf("%d of %d recipes failed to warm", failed, len(names))
			}
			return nil
		},
	}
}

// verifyCached confirms the named recipe's definition reached the cache
// under its current source fingerprint.
func verifyCached(cookbook recipe.Cookbook, cache *recipe.Cache, name string) error {
	data, err := cookbook.ReadFile(path.Join(name, recipe.DefinitionFileName))
	if err != nil {
		return err
	}
	if _, ok := cache.Get(name, recipe.Fingerprint(data)); !ok {
		return cberrors.NewWithContext(cberrors.ErrCodeCacheWrite,
			"definition did not reach the cache",
			map[string]any{"recipe": name})
	}
	return nil
}

func cachePurgeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "purge",
		EnableShellCompletion: true,
		Usage:                 "Remove every entry from the definition cache",
		Description: `Removes all cached definitions. The cache directory itself stays, so
the next cached load or warm starts from an empty cache.

# Examples

Purge the default per-user cache:
  cookctl cache purge

Purge a dedicated cache directory:
  cookctl cache purge --cache-dir /var/cache/cookctl`,
		Flags: []cli.Flag{
			cacheDirFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := cacheDir(cmd)
			if err != nil {
				return err
			}
			cache, err := recipe.OpenCache(dir)
			if err != nil {
				return err
			}
			if err := cache.Purge(); err != nil {
				return err
			}
			fmt.Printf("purged definition cache: %s\n", cache.Dir())
			return nil
		},
	}
}
