/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/NVIDIA/cookbook/pkg/serializer"
)

func TestListCmd_CommandStructure(t *testing.T) {
	cmd := listCmd()

	if cmd.Name != "list" {
		t.Errorf("Name = %v, want list", cmd.Name)
	}

	if cmd.Usage == "" {
		t.Error("Usage should not be empty")
	}

	if cmd.Description == "" {
		t.Error("Description should not be empty")
	}

	requiredFlags := []string{"cookbook", "cache", "cache-dir", "output", "format"}
	for _, flagName := range requiredFlags {
		found := false
		for _, flag := range cmd.Flags {
			if hasName(flag, flagName) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("required flag %q not found", flagName)
		}
	}

	if cmd.Action == nil {
		t.Error("Action should not be nil")
	}
}

func TestListCmd_ListsRecipes(t *testing.T) {
	cookbook := writeTestCookbook(t)
	listPath := filepath.Join(t.TempDir(), "list.yaml")

	err := listCmd().Run(context.Background(), []string{
		"list",
		"--cookbook", cookbook,
		"--format", "yaml",
		"-o", listPath,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	listing, err := serializer.FromFile[RecipeListing](listPath)
	if err != nil {
		t.Fatalf("failed to read listing: %v", err)
	}

	if listing.Count != 3 {
		t.Fatalf("Count = %d, want 3", listing.Count)
	}
	wantNames := []string{"base", "broken", "corp/blog"}
	for i, want := range wantNames {
		if listing.Recipes[i].Name != want {
			t.Errorf("Recipes[%d].Name = %q, want %q", i, listing.Recipes[i].Name, want)
		}
	}

	base := listing.Recipes[0]
	if base.DisplayName != "Base" {
		t.Errorf("base DisplayName = %q, want Base", base.DisplayName)
	}
	if base.Description != "Platform baseline" {
		t.Errorf("base Description = %q, want Platform baseline", base.Description)
	}
	if base.Extensions != 1 || base.Actions != 1 || base.Recipes != 0 || base.Configs != 0 {
		t.Errorf("base counts = {recipes:%d extensions:%d configs:%d actions:%d}, want {0 1 0 1}",
			base.Recipes, base.Extensions, base.Configs, base.Actions)
	}

	// A recipe that fails to parse is still listed by name.
	broken := listing.Recipes[1]
	if broken.Description != "" || broken.DisplayName != "" {
		t.Errorf("broken row = %+v, want name only", broken)
	}

	blog := listing.Recipes[2]
	if blog.DisplayName != "Blog" {
		t.Errorf("blog DisplayName = %q, want Blog", blog.DisplayName)
	}
	if blog.Recipes != 1 || blog.Extensions != 1 || blog.Configs != 1 || blog.Actions != 1 {
		t.Errorf("blog counts = {recipes:%d extensions:%d configs:%d actions:%d}, want {1 1 1 1}",
			blog.Recipes, blog.Extensions, blog.Configs, blog.Actions)
	}
}
