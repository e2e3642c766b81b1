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

// Package header provides the common envelope for cookbook data structures.
//
// The Header type is embedded in recipes, plans, run reports, and validation
// results to provide consistent kind, API version, and metadata fields in the
// Kubernetes resource style:
//
//	kind: Plan
//	apiVersion: cookbook.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2025-12-30T10:30:00Z"
//	  version: v0.4.1
//
// # Kind Field
//
// The Kind field identifies the resource type:
//   - Recipe: a recipe definition loaded from a cookbook
//   - Plan: the ordered operation list produced by expansion
//   - RunReport: the outcome of a batch run
//   - ValidationResult: the outcome of cookbook validation
//
// # Usage
//
// Embed the Header and initialize it before serialization:
//
//	type Plan struct {
//	    header.Header `yaml:",inline"`
//	    Operations    []Operation `yaml:"operations"`
//	}
//
//	var p Plan
//	p.Init(header.KindPlan, recipe.APIVersion, version)
//
// Consumers should check APIVersion before parsing and reject kinds they do
// not recognize.
package header
