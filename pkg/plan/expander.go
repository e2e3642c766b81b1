/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package plan

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NVIDIA/cookbook/pkg/errors"
	"github.com/NVIDIA/cookbook/pkg/recipe"
	"gopkg.in/yaml.v3"
)

// Loader is the slice of the recipe loader the expander needs.
type Loader interface {
	Load(ctx context.Context, name string) (*recipe.Definition, error)
	ReadConfigFile(name, file string) ([]byte, error)
}

// Expander turns named recipes into a flat, ordered operation list.
//
// Expansion is depth-first: each recipe's sub-recipes expand fully, in
// declaration order, before the recipe's own operations. Within a
// recipe the order is extensions, then configs, then actions. A recipe
// reached more than once expands only at its first occurrence, and an
// operation whose effect was already emitted collapses away. The output
// depends only on the cookbook contents, never on traversal state.
type Expander struct {
	loader Loader
}

// NewExpander creates an Expander over the given loader.
func NewExpander(loader Loader) *Expander {
	return &Expander{loader: loader}
}

// Expand expands the named recipes, in order, into one operation list.
// A composition cycle fails with a RECIPE_CYCLE error naming the chain.
func (e *Expander) Expand(ctx context.Context, names ...string) ([]Operation, error) {
	start := time.Now()
	defer func() {
		expandDuration.Observe(time.Since(start).Seconds())
	}()

	w := &walk{
		loader: e.loader,
		done:   make(map[string]bool),
		seen:   make(map[string]bool),
		onPath: make(map[string]bool),
	}
	for _, name := range names {
		if err := w.visit(ctx, name); err != nil {
			return nil, err
		}
	}

	planOperations.Observe(float64(len(w.ops)))
	slog.Debug("recipes expanded",
		"recipes", len(names),
		"operations", len(w.ops))
	return w.ops, nil
}

// walk carries the traversal state of one Expand call.
type walk struct {
	loader Loader
	ops    []Operation

	// done marks recipes that are fully expanded; revisits are no-ops.
	done map[string]bool

	// seen marks emitted operation keys for idempotent collapse.
	seen map[string]bool

	// onPath marks recipes on the active recursion path; reaching one
	// again means the composition contains a cycle. done never masks
	// this: a recipe is marked done only after it leaves the path.
	onPath map[string]bool
	path   []string
}

func (w *walk) visit(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeTimeout,
			fmt.Sprintf("expansion canceled at recipe %s", name), err)
	}
	if w.onPath[name] {
		chain := strings.Join(append(w.path, name), " -> ")
		return errors.NewWithContext(errors.ErrCodeRecipeCycle,
			fmt.Sprintf("recipe composition cycle: %s", chain),
			map[string]any{"recipe": name})
	}
	if w.done[name] {
		return nil
	}

	def, err := w.loader.Load(ctx, name)
	if err != nil {
		return err
	}

	w.onPath[name] = true
	w.path = append(w.path, name)
	for _, sub := range def.Spec.Recipes {
		if err := w.visit(ctx, sub); err != nil {
			return err
		}
	}
	w.path = w.path[:len(w.path)-1]
	delete(w.onPath, name)
	w.done[name] = true

	for _, ext := range def.Spec.Extensions {
		w.emit(Operation{Kind: KindEnableExtension, Name: ext, Recipe: name})
	}
	for _, cfg := range def.Spec.Configs {
		payload, err := w.configPayload(name, cfg)
		if err != nil {
			return err
		}
		w.emit(Operation{Kind: KindImportConfig, Name: cfg.Name, Recipe: name, Config: payload})
	}
	for _, act := range def.Spec.Actions {
		w.emit(Operation{Kind: KindRunAction, Name: act.Name, Recipe: name, Args: act.Args})
	}
	return nil
}

func (w *walk) emit(op Operation) {
	key := op.Key()
	if w.seen[key] {
		return
	}
	w.seen[key] = true
	w.ops = append(w.ops, op)
}

// configPayload materializes a config reference into its payload
// mapping, reading file-backed payloads through the loader.
func (w *walk) configPayload(name string, cfg recipe.ConfigRef) (map[string]any, error) {
	if len(cfg.Data) > 0 {
		return cfg.Data, nil
	}
	raw, err := w.loader.ReadConfigFile(name, cfg.File)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := yaml.Unmarshal(raw, &payload); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeMalformedRecipe,
			fmt.Sprintf("config file %q of recipe %q is not a mapping", cfg.File, name), err,
			map[string]any{"config": cfg.Name})
	}
	if payload == nil {
		return nil, errors.NewWithContext(errors.ErrCodeMalformedRecipe,
			fmt.Sprintf("config file %q of recipe %q is empty", cfg.File, name),
			map[string]any{"config": cfg.Name})
	}
	return payload, nil
}
