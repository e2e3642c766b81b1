/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"

	"github.com/NVIDIA/cookbook/pkg/recipe"
)

// Loader resolves recipe names to definitions.
type Loader interface {
	Load(ctx context.Context, name string) (*recipe.Definition, error)
}

// CollectDefinitions loads the named recipes and, depth-first, every
// recipe they compose, so requirements declared anywhere in the
// composition are visible. Each definition appears once, sub-recipes
// before the recipe that composes them (apply order).
func CollectDefinitions(ctx context.Context, l Loader, names ...string) ([]*recipe.Definition, error) {
	seen := make(map[string]bool)
	defs := make([]*recipe.Definition, 0, len(names))

	var visit func(name string) error
	visit = func(name string) error {
		if seen[name] {
			return nil
		}
		seen[name] = true

		def, err := l.Load(ctx, name)
		if err != nil {
			return err
		}
		for _, sub := range def.Spec.Recipes {
			if err := visit(sub); err != nil {
				return err
			}
		}
		defs = append(defs, def)
		return nil
	}

	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return defs, nil
}
