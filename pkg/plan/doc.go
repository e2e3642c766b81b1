/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package plan expands recipes into flat, ordered operation lists.
//
// A recipe composes other recipes, enables extensions, imports config
// objects, and runs actions. The Expander resolves that composition
// depth-first into a single sequence of atomic operations:
//
//	loader := recipe.NewLoader(cookbook)
//	ops, err := plan.NewExpander(loader).Expand(ctx, "base", "blog")
//
// Sub-recipes contribute their operations before the recipe that
// composes them, so dependencies are established first. Repeated
// recipes expand once, and an extension enabled by several recipes
// yields a single enable operation at its first position. Composition
// cycles fail with a RECIPE_CYCLE error naming the chain.
//
// Expansion is deterministic: the same cookbook contents always produce
// the same operation list. Config payloads are read and embedded at
// expansion time, so a serialized Plan replays identically even if the
// cookbook changes afterwards.
package plan
