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

// Package validator evaluates recipe requirements against host properties.
//
// # Overview
//
// Recipes declare requirements under spec.requires to express the host-side
// conditions they depend on, most commonly a minimum orchestrator version.
// The validator resolves each requirement name against a property set
// (orchestrator version, platform facts, caller-supplied overrides) and
// evaluates the requirement expression against the resolved value.
//
// # Requirement Format
//
// Requirement names are flat property names:
//
//	cookctl             -> orchestrator version
//	platform.os         -> host operating system
//	platform.arch       -> host architecture
//	platform.os.id      -> distribution ID from os-release (when present)
//	platform.os.version -> distribution version from os-release (when present)
//
// Callers may extend the set with their own properties via Properties.Merge.
//
// # Supported Operators
//
// The following comparison operators are supported in requirement values:
//   - ">=" - Greater than or equal (version comparison)
//   - "<=" - Less than or equal (version comparison)
//   - ">"  - Greater than (version comparison)
//   - "<"  - Less than (version comparison)
//   - "==" - Exact match (string or version)
//   - "!=" - Not equal (string or version)
//   - (no operator) - Exact string match
//
// # Usage
//
// Basic validation:
//
//	props := validator.HostProperties(buildVersion)
//	v := validator.New(validator.WithVersion(buildVersion))
//	result, err := v.Validate(ctx, defs, props)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Status: %s\n", result.Summary.Status)
//	for _, r := range result.Results {
//	    fmt.Printf("  %s/%s: expected %q, got %q - %v\n",
//	        r.Recipe, r.Name, r.Expected, r.Actual, r.Status)
//	}
//
// # Result Structure
//
// ValidationResult contains:
//   - Summary: Overall pass/fail counts and status
//   - Results: Per-requirement validation results with expected/actual values
//
// # Error Handling
//
// Requirements that cannot be evaluated (e.g., property not known on the
// host) are marked as "skipped" with appropriate warning messages, allowing
// partial validation results to be returned.
package validator
