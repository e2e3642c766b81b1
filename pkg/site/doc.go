/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package site provides targets that plan operations apply to.
//
// The Target interface is the seam between the generic batch machinery
// and whatever actually hosts the extensions and config: a directory
// (Store), a dry-run recorder (Recorder), or a caller's own
// implementation. NewExecutor adapts any Target to the batch runner:
//
//	store, err := site.Open("/var/lib/cookbook/site")
//	if err != nil {
//		return err
//	}
//	runner := batch.NewRunner(site.NewExecutor(store))
//
// Store persists enabled extensions and action runs in state.yaml and
// config objects as files under config/, all written atomically. Every
// Target method is idempotent so interrupted jobs can replay their last
// operation safely.
package site
