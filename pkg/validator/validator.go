/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/cookbook/pkg/errors"
	"github.com/NVIDIA/cookbook/pkg/header"
	"github.com/NVIDIA/cookbook/pkg/recipe"
)

// RequirementEvalResult represents the result of evaluating a single requirement.
type RequirementEvalResult struct {
	// Passed indicates if the requirement was satisfied.
	Passed bool

	// Actual is the actual value resolved from the host properties.
	Actual string

	// Error contains the error if evaluation failed (e.g., property not known).
	Error error
}

// EvaluateRequirement evaluates a single requirement against the host properties.
// This is a standalone function that can be used by other packages without
// creating a full Validator instance. Used by the installer package to gate
// recipe application on host requirements.
func EvaluateRequirement(req recipe.Requirement, props Properties) RequirementEvalResult {
	result := RequirementEvalResult{}

	// Resolve the actual value from host properties
	actual, err := props.Resolve(req.Name)
	if err != nil {
		result.Error = fmt.Errorf("property not resolvable: %w", err)
		return result
	}
	result.Actual = actual

	// Parse the requirement expression
	parsed, err := ParseConstraintExpression(req.Value)
	if err != nil {
		result.Error = fmt.Errorf("invalid requirement expression: %w", err)
		return result
	}

	// Evaluate the requirement
	passed, err := parsed.Evaluate(actual)
	if err != nil {
		result.Error = fmt.Errorf("evaluation failed: %w", err)
		return result
	}

	result.Passed = passed
	return result
}

// Validator evaluates recipe requirements against host properties.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate evaluates the requirements of each definition against the host
// properties. Returns a ValidationResult containing per-requirement results
// and a summary; a failed requirement never aborts the remaining checks.
func (v *Validator) Validate(ctx context.Context, defs []*recipe.Definition, props Properties) (*ValidationResult, error) {
	start := time.Now()

	if props == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "host properties cannot be nil")
	}

	result := NewValidationResult()
	result.Init(header.KindValidationResult, recipe.APIVersion, v.Version)

	total := 0
	for _, def := range defs {
		if def == nil {
			return nil, errors.New(errors.ErrCodeInvalidRequest, "recipe definition cannot be nil")
		}
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(errors.ErrCodeTimeout,
				fmt.Sprintf("validation canceled at recipe %s", def.Metadata.Name), ctx.Err())
		default:
		}

		result.Recipes = append(result.Recipes, def.Metadata.Name)
		total += len(def.Spec.Requires)

		// Evaluate each requirement
		for _, req := range def.Spec.Requires {
			rv := v.evaluateRequirement(def.Metadata.Name, req, props)
			result.Results = append(result.Results, rv)

			// Update summary counts
			switch rv.Status {
			case RequirementStatusPassed:
				result.Summary.Passed++
			case RequirementStatusFailed:
				result.Summary.Failed++
			case RequirementStatusSkipped:
				result.Summary.Skipped++
			}
		}
	}

	// Calculate summary
	result.Summary.Total = total
	result.Summary.Duration = time.Since(start)

	// Determine overall status
	switch {
	case result.Summary.Failed > 0:
		result.Summary.Status = ValidationStatusFail
	case result.Summary.Skipped > 0:
		result.Summary.Status = ValidationStatusPartial
	default:
		result.Summary.Status = ValidationStatusPass
	}

	slog.Debug("validation completed",
		"recipes", len(result.Recipes),
		"passed", result.Summary.Passed,
		"failed", result.Summary.Failed,
		"skipped", result.Summary.Skipped,
		"status", result.Summary.Status,
		"duration", result.Summary.Duration)

	return result, nil
}

// evaluateRequirement evaluates a single requirement against the host properties.
func (v *Validator) evaluateRequirement(recipeName string, req recipe.Requirement, props Properties) RequirementValidation {
	rv := RequirementValidation{
		Recipe:   recipeName,
		Name:     req.Name,
		Expected: req.Value,
	}

	// Resolve the actual value from host properties
	actual, err := props.Resolve(req.Name)
	if err != nil {
		rv.Status = RequirementStatusSkipped
		rv.Message = fmt.Sprintf("property not resolvable: %v", err)
		slog.Warn("skipping requirement - property not known",
			"recipe", recipeName,
			"name", req.Name,
			"error", err)
		return rv
	}
	rv.Actual = actual

	// Surface well-known host facts as they are resolved
	printDetectedProperty(req.Name, actual)

	// Parse the requirement expression
	parsed, err := ParseConstraintExpression(req.Value)
	if err != nil {
		rv.Status = RequirementStatusSkipped
		rv.Message = fmt.Sprintf("invalid requirement expression: %v", err)
		slog.Warn("skipping requirement with invalid expression",
			"recipe", recipeName,
			"name", req.Name,
			"expression", req.Value,
			"error", err)
		return rv
	}

	// Evaluate the requirement
	passed, err := parsed.Evaluate(actual)
	if err != nil {
		rv.Status = RequirementStatusFailed
		rv.Message = fmt.Sprintf("evaluation failed: %v", err)
		slog.Debug("requirement evaluation failed",
			"recipe", recipeName,
			"name", req.Name,
			"expected", req.Value,
			"actual", actual,
			"error", err)
		return rv
	}

	if passed {
		rv.Status = RequirementStatusPassed
		slog.Debug("requirement passed",
			"recipe", recipeName,
			"name", req.Name,
			"expected", req.Value,
			"actual", actual)
	} else {
		rv.Status = RequirementStatusFailed
		rv.Message = fmt.Sprintf("expected %s, got %s", req.Value, actual)
		slog.Debug("requirement failed",
			"recipe", recipeName,
			"name", req.Name,
			"expected", req.Value,
			"actual", actual)
	}

	return rv
}

// printDetectedProperty logs well-known host facts as they are resolved.
func printDetectedProperty(name, value string) {
	switch name {
	case PropCookctl:
		slog.Info("detected host property", "cookctl", value)
	case PropPlatformOS:
		slog.Info("detected host property", "os", value)
	case PropPlatformArch:
		slog.Info("detected host property", "arch", value)
	}
}
