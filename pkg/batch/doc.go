/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package batch runs plan operations as sequential, resumable jobs.
//
// A Job pairs an ordered operation list with a position; the Runner
// executes operations one at a time from that position, reporting each
// outcome to a ProgressSink:
//
//	job := batch.NewJob(p.Title(), p.Operations)
//	runner := batch.NewRunner(target,
//		batch.WithProgressSink(batch.NewConsoleSink(os.Stderr, time.Second)))
//	res, err := runner.Run(ctx, job)
//
// The first operation failure stops the run; the job position stays at
// the failed operation so a caller can fix the cause and re-invoke Run.
// Operations are required to be idempotent, which makes re-running the
// failed step safe.
//
// Drivers with a per-invocation budget bound each call with
// WithMaxPerRun(n) and loop until Result.Done.
package batch
