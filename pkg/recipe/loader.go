/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package recipe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"time"

	cberrors "github.com/NVIDIA/cookbook/pkg/errors"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"
)

// Loader reads and validates recipe definitions from a cookbook.
// Without a cache every Load parses the definition from source; with
// WithCache, fingerprint-matched entries skip the parse. Concurrent
// loads of the same recipe are collapsed into one read.
type Loader struct {
	cookbook Cookbook
	cache    *Cache
	group    singleflight.Group
}

// LoaderOption customizes a Loader.
type LoaderOption func(*Loader)

// WithCache attaches a definition cache. Cache read or write failures
// never fail a load; writes that fail are logged and skipped.
func WithCache(c *Cache) LoaderOption {
	return func(l *Loader) {
		l.cache = c
	}
}

// NewLoader creates a Loader over the given cookbook.
func NewLoader(cookbook Cookbook, opts ...LoaderOption) *Loader {
	l := &Loader{cookbook: cookbook}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the validated definition of the named recipe.
func (l *Loader) Load(ctx context.Context, name string) (*Definition, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	v, err, _ := l.group.Do(name, func() (any, error) {
		return l.load(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Definition), nil
}

func (l *Loader) load(ctx context.Context, name string) (*Definition, error) {
	start := time.Now()
	defer func() {
		loadDuration.Observe(time.Since(start).Seconds())
	}()

	if err := ctx.Err(); err != nil {
		return nil, cberrors.Wrap(cberrors.ErrCodeTimeout,
			fmt.Sprintf("recipe load canceled: %s", name), err)
	}

	raw, err := l.cookbook.ReadFile(path.Join(name, DefinitionFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cberrors.WrapWithContext(cberrors.ErrCodeNotFound,
				fmt.Sprintf("recipe %q not found", name), err,
				map[string]any{"source": l.cookbook.Source()})
		}
		return nil, cberrors.WrapWithContext(cberrors.ErrCodeInternal,
			fmt.Sprintf("failed to read recipe %q", name), err,
			map[string]any{"source": l.cookbook.Source()})
	}

	fp := Fingerprint(raw)
	if l.cache != nil {
		if def, ok := l.cache.Get(name, fp); ok {
			cacheHits.Inc()
			slog.Debug("recipe definition served from cache", "recipe", name)
			return def, nil
		}
		cacheMisses.Inc()
	}

	def, err := Parse(raw)
	if err != nil {
		return nil, cberrors.WrapWithContext(cberrors.ErrCodeMalformedRecipe,
			fmt.Sprintf("failed to parse recipe %q", name), err,
			map[string]any{"source": l.cookbook.Source()})
	}
	if err := def.Validate(name); err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Put(name, fp, def); err != nil {
			slog.Warn("failed to cache recipe definition",
				"recipe", name,
				"error", err)
		}
	}
	return def, nil
}

// ReadConfigFile reads a config payload file declared by a recipe. The
// path is resolved relative to the recipe's directory.
func (l *Loader) ReadConfigFile(name, file string) ([]byte, error) {
	raw, err := l.cookbook.ReadFile(path.Join(name, file))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cberrors.NewWithContext(cberrors.ErrCodeMalformedRecipe,
				fmt.Sprintf("recipe %q references missing config file %q", name, file),
				map[string]any{"source": l.cookbook.Source()})
		}
		return nil, cberrors.WrapWithContext(cberrors.ErrCodeInternal,
			fmt.Sprintf("failed to read config file %q of recipe %q", file, name), err,
			map[string]any{"source": l.cookbook.Source()})
	}
	return raw, nil
}

// Parse decodes a recipe definition document.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, cberrors.Wrap(cberrors.ErrCodeMalformedRecipe,
			"invalid recipe document", err)
	}
	return &def, nil
}
