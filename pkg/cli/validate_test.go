/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NVIDIA/cookbook/pkg/serializer"
	"github.com/NVIDIA/cookbook/pkg/validator"
)

// strictDoc declares a requirement on a property the host does not
// know, so tests control the outcome through --property overrides.
const strictDoc = `kind: Recipe
apiVersion: cookbook.nvidia.com/v1alpha1
metadata:
  name: strict
spec:
  extensions:
    - hardened_login
  requires:
    - name: site.tier
      value: production
`

func TestValidateCmd_CommandStructure(t *testing.T) {
	cmd := validateCmd()

	if cmd.Name != "validate" {
		t.Errorf("Name = %v, want validate", cmd.Name)
	}

	if cmd.Usage == "" {
		t.Error("Usage should not be empty")
	}

	if cmd.Description == "" {
		t.Error("Description should not be empty")
	}

	requiredFlags := []string{
		"recipe", "all", "property", "fail-on-error",
		"cookbook", "cache", "cache-dir", "output", "format",
	}
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

func TestValidateCmd_CoversComposition(t *testing.T) {
	cookbook := writeTestCookbook(t)
	resultPath := filepath.Join(t.TempDir(), "result.yaml")

	err := validateCmd().Run(context.Background(), []string{
		"validate",
		"-r", "corp/blog",
		"--cookbook", cookbook,
		"--format", "yaml",
		"-o", resultPath,
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	result, err := serializer.FromFile[validator.ValidationResult](resultPath)
	if err != nil {
		t.Fatalf("failed to read result: %v", err)
	}

	if result.Summary.Status != validator.ValidationStatusPass {
		t.Errorf("Status = %v, want %v", result.Summary.Status, validator.ValidationStatusPass)
	}

	// Requirement checks cover the requested recipe and everything it
	// composes.
	if len(result.Recipes) != 2 {
		t.Fatalf("Recipes = %v, want base and corp/blog", result.Recipes)
	}
	covered := map[string]bool{}
	for _, n := range result.Recipes {
		covered[n] = true
	}
	if !covered["base"] || !covered["corp/blog"] {
		t.Errorf("Recipes = %v, want base and corp/blog", result.Recipes)
	}
}

func TestValidateCmd_RequirementOutcomes(t *testing.T) {
	cookbook := t.TempDir()
	writeRecipe(t, cookbook, "strict", strictDoc)

	tests := []struct {
		name        string
		extra       []string
		wantErr     bool
		errMsg      string
		wantStatus  validator.ValidationStatus
		wantPassed  int
		wantFailed  int
		wantSkipped int
	}{
		{
			name:        "unknown property is skipped",
			wantStatus:  validator.ValidationStatusPartial,
			wantSkipped: 1,
		},
		{
			name:       "override satisfies requirement",
			extra:      []string{"--property", "site.tier=production"},
			wantStatus: validator.ValidationStatusPass,
			wantPassed: 1,
		},
		{
			name:       "override violates requirement",
			extra:      []string{"--property", "site.tier=staging"},
			wantStatus: validator.ValidationStatusFail,
			wantFailed: 1,
		},
		{
			name:    "fail-on-error escalates to exit error",
			extra:   []string{"--property", "site.tier=staging", "--fail-on-error"},
			wantErr: true,
			errMsg:  "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resultPath := filepath.Join(t.TempDir(), "result.yaml")
			args := []string{
				"validate",
				"-r", "strict",
				"--cookbook", cookbook,
				"--format", "yaml",
				"-o", resultPath,
			}
			err := validateCmd().Run(context.Background(), append(args, tt.extra...))

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error = %v, want error containing %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("validate failed: %v", err)
			}

			result, err := serializer.FromFile[validator.ValidationResult](resultPath)
			if err != nil {
				t.Fatalf("failed to read result: %v", err)
			}
			if result.Summary.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", result.Summary.Status, tt.wantStatus)
			}
			if result.Summary.Passed != tt.wantPassed ||
				result.Summary.Failed != tt.wantFailed ||
				result.Summary.Skipped != tt.wantSkipped {
				t.Errorf("Summary = {passed:%d failed:%d skipped:%d}, want {%d %d %d}",
					result.Summary.Passed, result.Summary.Failed, result.Summary.Skipped,
					tt.wantPassed, tt.wantFailed, tt.wantSkipped)
			}
		})
	}
}

func TestValidateCmd_All(t *testing.T) {
	cookbook := t.TempDir()
	writeRecipe(t, cookbook, "base", `kind: Recipe
apiVersion: cookbook.nvidia.com/v1alpha1
metadata:
  name: base
spec:
  extensions:
    - pathauto
`)
	writeRecipe(t, cookbook, "corp/blog", `kind: Recipe
apiVersion: cookbook.nvidia.com/v1alpha1
metadata:
  name: corp/blog
spec:
  recipes:
    - base
  extensions:
    - blog_module
`)
	resultPath := filepath.Join(t.TempDir(), "result.yaml")

	err := validateCmd().Run(context.Background(), []string{
		"validate",
		"--all",
		"--cookbook", cookbook,
		"--format", "yaml",
		"-o", resultPath,
	})
	if err != nil {
		t.Fatalf("validate --all failed: %v", err)
	}

	result, err := serializer.FromFile[validator.ValidationResult](resultPath)
	if err != nil {
		t.Fatalf("failed to read result: %v", err)
	}
	if result.Summary.Status != validator.ValidationStatusPass {
		t.Errorf("Status = %v, want %v", result.Summary.Status, validator.ValidationStatusPass)
	}
}

func TestValidateCmd_AllCatchesMalformed(t *testing.T) {
	cookbook := writeTestCookbook(t)

	err := validateCmd().Run(context.Background(), []string{
		"validate",
		"--all",
		"--cookbook", cookbook,
	})
	if err == nil {
		t.Fatal("expected error for cookbook with a malformed recipe")
	}
	if !strings.Contains(err.Error(), "failed schema validation") {
		t.Errorf("error = %v, want schema validation failure", err)
	}
}

func TestValidateCmd_FlagValidation(t *testing.T) {
	cookbook := writeTestCookbook(t)

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{
			name:   "all and recipe are exclusive",
			args:   []string{"validate", "--all", "-r", "base", "--cookbook", cookbook},
			errMsg: "mutually exclusive",
		},
		{
			name:   "recipe or all required",
			args:   []string{"validate", "--cookbook", cookbook},
			errMsg: "at least one --recipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCmd().Run(context.Background(), tt.args)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}
