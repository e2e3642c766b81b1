/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package recipe

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/NVIDIA/cookbook/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Fingerprint returns the hex-encoded SHA-256 digest of a recipe
// definition's raw bytes. Cache entries are keyed on it so that any
// edit to recipe.yaml invalidates the entry.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// cacheEntry is the on-disk layout of one cached definition.
type cacheEntry struct {
	Fingerprint string     `yaml:"fingerprint"`
	Definition  Definition `yaml:"definition"`
}

// Cache stores parsed recipe definitions under a directory, one YAML
// file per recipe, keyed by the fingerprint of the source document.
// Lookups with a stale fingerprint miss; writes are atomic.
type Cache struct {
	dir string
}

// OpenCache opens (creating if needed) a definition cache at dir.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "cache directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeCacheWrite,
			"failed to create cache directory", err,
			map[string]any{"dir": dir})
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Get returns the cached definition for name when the entry exists and
// its fingerprint matches. Unreadable or stale entries are misses.
func (c *Cache) Get(name, fingerprint string) (*Definition, bool) {
	raw, err := os.ReadFile(c.entryPath(name))
	if err != nil {
		return nil, false
	}
	var entry cacheEntry
	if err := yaml.Unmarshal(raw, &entry); err != nil {
		slog.Debug("discarding unreadable cache entry", "recipe", name, "error", err)
		return nil, false
	}
	if entry.Fingerprint != fingerprint {
		return nil, false
	}
	return &entry.Definition, true
}

// Put writes the definition for name under the given fingerprint. The
// entry is written to a temp file and renamed into place so readers
// never observe a partial entry.
func (c *Cache) Put(name, fingerprint string, def *Definition) error {
	out, err := yaml.Marshal(cacheEntry{Fingerprint: fingerprint, Definition: *def})
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeCacheWrite,
			"failed to encode cache entry", err,
			map[string]any{"recipe": name})
	}
	target := c.entryPath(name)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.WrapWithContext(errors.ErrCodeCacheWrite,
			"failed to create cache subdirectory", err,
			map[string]any{"recipe": name})
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), ".cookbook-cache-*")
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeCacheWrite,
			"failed to create cache temp file", err,
			map[string]any{"recipe": name})
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapWithContext(errors.ErrCodeCacheWrite,
			"failed to write cache entry", err,
			map[string]any{"recipe": name})
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithContext(errors.ErrCodeCacheWrite,
			"failed to close cache temp file", err,
			map[string]any{"recipe": name})
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithContext(errors.ErrCodeCacheWrite,
			"failed to publish cache entry", err,
			map[string]any{"recipe": name})
	}
	return nil
}

// Purge removes every entry from the cache, leaving the directory in
// place.
func (c *Cache) Purge() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeCacheWrite,
			"failed to read cache directory", err,
			map[string]any{"dir": c.dir})
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return errors.WrapWithContext(errors.ErrCodeCacheWrite,
				fmt.Sprintf("failed to remove cache entry %q", e.Name()), err,
				map[string]any{"dir": c.dir})
		}
	}
	return nil
}

func (c *Cache) entryPath(name string) string {
	return filepath.Join(c.dir, filepath.FromSlash(name)+".yaml")
}
