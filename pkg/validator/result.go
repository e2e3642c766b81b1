// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package validator

import (
	"time"

	"github.com/NVIDIA/cookbook/pkg/header"
)

// ValidationStatus represents the overall validation outcome.
type ValidationStatus string

const (
	// ValidationStatusPass indicates all requirements passed.
	ValidationStatusPass ValidationStatus = "pass"

	// ValidationStatusFail indicates one or more requirements failed.
	ValidationStatusFail ValidationStatus = "fail"

	// ValidationStatusPartial indicates some requirements couldn't be evaluated.
	ValidationStatusPartial ValidationStatus = "partial"
)

// RequirementStatus represents the outcome of evaluating a single requirement.
type RequirementStatus string

const (
	// RequirementStatusPassed indicates the requirement was satisfied.
	RequirementStatusPassed RequirementStatus = "passed"

	// RequirementStatusFailed indicates the requirement was not satisfied.
	RequirementStatusFailed RequirementStatus = "failed"

	// RequirementStatusSkipped indicates the requirement couldn't be evaluated.
	RequirementStatusSkipped RequirementStatus = "skipped"
)

// ValidationResult represents the complete validation outcome.
type ValidationResult struct {
	header.Header `json:",inline" yaml:",inline"`

	// Cookbook is the source path/URI of the cookbook that was validated.
	Cookbook string `json:"cookbook,omitempty" yaml:"cookbook,omitempty"`

	// Recipes are the recipe names covered by this result, in validation order.
	Recipes []string `json:"recipes" yaml:"recipes"`

	// Summary contains aggregate validation statistics.
	Summary ValidationSummary `json:"summary" yaml:"summary"`

	// Results contains per-requirement validation details.
	Results []RequirementValidation `json:"results" yaml:"results"`
}

// ValidationSummary contains aggregate statistics about the validation.
type ValidationSummary struct {
	// Passed is the count of requirements that were satisfied.
	Passed int `json:"passed" yaml:"passed"`

	// Failed is the count of requirements that were not satisfied.
	Failed int `json:"failed" yaml:"failed"`

	// Skipped is the count of requirements that couldn't be evaluated.
	Skipped int `json:"skipped" yaml:"skipped"`

	// Total is the total number of requirements evaluated.
	Total int `json:"total" yaml:"total"`

	// Status is the overall validation status.
	Status ValidationStatus `json:"status" yaml:"status"`

	// Duration is how long the validation took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// RequirementValidation represents the result of evaluating a single requirement.
type RequirementValidation struct {
	// Recipe is the name of the recipe that declared this requirement.
	Recipe string `json:"recipe" yaml:"recipe"`

	// Name is the requirement name (e.g., "cookctl", "platform.os").
	Name string `json:"name" yaml:"name"`

	// Expected is the requirement expression from the recipe (e.g., ">= 0.1.4").
	Expected string `json:"expected" yaml:"expected"`

	// Actual is the value found on the host (e.g., "0.2.0").
	Actual string `json:"actual" yaml:"actual"`

	// Status is the outcome of this requirement evaluation.
	Status RequirementStatus `json:"status" yaml:"status"`

	// Message provides additional context, especially for failures or skipped requirements.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// NewValidationResult creates a new ValidationResult with initialized slices.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Recipes: make([]string, 0),
		Results: make([]RequirementValidation, 0),
	}
}
