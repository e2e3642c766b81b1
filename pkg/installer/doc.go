/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package installer runs ordered install pipelines.
//
// A pipeline is an explicit list of named stages the caller assembles:
//
//	p, err := installer.NewPipeline(
//		installer.Stage{ID: "provision", Run: provision},
//		installer.RecipesStage(app, store, sink),
//		installer.Stage{ID: "cleanup", Run: cleanup},
//	)
//	if err != nil {
//		return err
//	}
//	err = p.InsertBefore(installer.StageApplyRecipes, installer.Stage{
//		ID:  "verify-requirements",
//		Run: verify,
//	})
//
// Stage order is owned by whoever builds the pipeline. Inserting
// relative to a named anchor replaces the hook-based task-list
// alteration a host framework would otherwise provide.
package installer
