/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cookbook/pkg/recipe"
	"github.com/NVIDIA/cookbook/pkg/serializer"
	"github.com/NVIDIA/cookbook/pkg/validator"
)

// parseOutputFormat reads and validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported values: %s)",
			f, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}

// openCookbook opens the --cookbook directory.
func openCookbook(cmd *cli.Command) (*recipe.DirCookbook, error) {
	dir := cmd.String("cookbook")
	cookbook, err := recipe.OpenDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open cookbook %q: %w", dir, err)
	}
	return cookbook, nil
}

// cacheDir resolves the definition cache directory from the --cache-dir
// flag or its environment source, falling back to a per-user location.
func cacheDir(cmd *cli.Command) (string, error) {
	if dir := cmd.String("cache-dir"); dir != "" {
		return dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user cache directory: %w", err)
	}
	return filepath.Join(base, name), nil
}

// newLoader builds a definition loader over the cookbook, attaching the
// definition cache when --cache (or COOKCTL_CACHE) enables it.
func newLoader(cmd *cli.Command, cookbook recipe.Cookbook) (*recipe.Loader, error) {
	if !cmd.Bool("cache") {
		return recipe.NewLoader(cookbook), nil
	}
	dir, err := cacheDir(cmd)
	if err != nil {
		return nil, err
	}
	cache, err := recipe.OpenCache(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open definition cache %q: %w", dir, err)
	}
	slog.Debug("definition cache enabled", "dir", cache.Dir())
	return recipe.NewLoader(cookbook, recipe.WithCache(cache)), nil
}

// parseProperties parses repeated name=value host property overrides.
func parseProperties(kvs []string) (validator.Properties, error) {
	props := validator.Properties{}
	for _, kv := range kvs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid property %q, want name=value", kv)
		}
		props[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return props, nil
}

// serializeTo writes v in the given format to path, or to stdout when
// path is empty.
func serializeTo(format serializer.Format, path string, v any) error {
	ser := serializer.NewFileWriterOrStdout(format, path)
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()
	return ser.Serialize(v)
}
