/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package recipe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("kind: Recipe\n"))
	b := Fingerprint([]byte("kind: Recipe\n"))
	c := Fingerprint([]byte("kind: Recipe\nmetadata: {}\n"))

	if a != b {
		t.Errorf("Fingerprint() not stable: %q != %q", a, b)
	}
	if a == c {
		t.Error("Fingerprint() identical for different documents")
	}
	if len(a) != 64 {
		t.Errorf("Fingerprint() length = %d, want 64", len(a))
	}
}

func TestOpenCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c, err := OpenCache(dir)
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache directory not created: %v", err)
	}

	if _, err := OpenCache(""); err == nil {
		t.Error("OpenCache(\"\") expected error, got nil")
	}
}

func TestCachePutGet(t *testing.T) {
	c, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}

	def := validDefinition("blog")
	fp := Fingerprint([]byte("source document"))

	if _, ok := c.Get("blog", fp); ok {
		t.Fatal("Get() before Put() reported a hit")
	}
	if err := c.Put("blog", fp, def); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok := c.Get("blog", fp)
	if !ok {
		t.Fatal("Get() after Put() reported a miss")
	}
	if got.Metadata.Name != "blog" {
		t.Errorf("Get() name = %q, want %q", got.Metadata.Name, "blog")
	}
	if len(got.Spec.Extensions) != 1 || got.Spec.Extensions[0] != "comments" {
		t.Errorf("Get() extensions = %v, want [comments]", got.Spec.Extensions)
	}
}

func TestCacheStaleFingerprintMisses(t *testing.T) {
	c, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	if err := c.Put("blog", Fingerprint([]byte("v1")), validDefinition("blog")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, ok := c.Get("blog", Fingerprint([]byte("v2"))); ok {
		t.Error("Get() with stale fingerprint reported a hit")
	}
}

func TestCacheCorruptEntryMisses(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenCache(dir)
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "blog.yaml"), []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("blog", "whatever"); ok {
		t.Error("Get() with corrupt entry reported a hit")
	}
}

func TestCacheNestedRecipeName(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenCache(dir)
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	fp := Fingerprint([]byte("doc"))
	if err := c.Put("corp/blog", fp, validDefinition("corp/blog")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, ok := c.Get("corp/blog", fp); !ok {
		t.Error("Get() for nested recipe name reported a miss")
	}
	if _, err := os.Stat(filepath.Join(dir, "corp", "blog.yaml")); err != nil {
		t.Errorf("nested entry not on disk: %v", err)
	}
}

func TestCachePutLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenCache(dir)
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	if err := c.Put("blog", Fingerprint([]byte("doc")), validDefinition("blog")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".cookbook-cache-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestCachePurge(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenCache(dir)
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	fp := Fingerprint([]byte("doc"))
	for _, name := range []string{"base", "corp/blog"} {
		if err := c.Put(name, fp, validDefinition(name)); err != nil {
			t.Fatalf("Put(%q) error = %v", name, err)
		}
	}
	if err := c.Purge(); err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("cache directory removed by Purge(): %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Purge() left %d entries", len(entries))
	}
	if _, ok := c.Get("base", fp); ok {
		t.Error("Get() after Purge() reported a hit")
	}
}
