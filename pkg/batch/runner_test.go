/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"context"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/NVIDIA/cookbook/pkg/errors"
	"github.com/NVIDIA/cookbook/pkg/plan"
)

// fakeExecutor records calls and fails on the named operation.
type fakeExecutor struct {
	calls    []string
	failOn   string
	failures int // how many times failOn fails before healing
}

func (f *fakeExecutor) Execute(_ context.Context, op plan.Operation) error {
	f.calls = append(f.calls, op.Name)
	if op.Name == f.failOn && f.failures != 0 {
		if f.failures > 0 {
			f.failures--
		}
		return stderrors.New("target rejected operation")
	}
	return nil
}

// recordSink captures every event.
type recordSink struct {
	events []Event
}

func (r *recordSink) Report(ev Event) {
	r.events = append(r.events, ev)
}

func installOps() []plan.Operation {
	return []plan.Operation{
		{Kind: plan.KindEnableExtension, Name: "core_content", Recipe: "base"},
		{Kind: plan.KindEnableExtension, Name: "blog_module", Recipe: "blog"},
		{Kind: plan.KindImportConfig, Name: "blog.settings", Recipe: "blog",
			Config: map[string]any{"title": "My Blog"}},
	}
}

func TestRunnerRunsSequentially(t *testing.T) {
	exec := &fakeExecutor{}
	sink := &recordSink{}
	job := NewJob("install blog", installOps())

	res, err := NewRunner(exec, WithProgressSink(sink)).Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantCalls := []string{"core_content", "blog_module", "blog.settings"}
	if !reflect.DeepEqual(exec.calls, wantCalls) {
		t.Errorf("execution order = %v, want %v", exec.calls, wantCalls)
	}
	if !res.Done || res.Failed() {
		t.Errorf("Result = %+v, want done without failure", res)
	}
	if res.Position != 3 || res.Completed != 3 || res.Total != 3 {
		t.Errorf("Result counters = %+v", res)
	}
	if job.Position != 3 || !job.Done() {
		t.Errorf("job position = %d, want 3", job.Position)
	}

	if len(sink.events) != 3 {
		t.Fatalf("got %d events, want 3", len(sink.events))
	}
	for i, ev := range sink.events {
		if ev.Index != i || ev.Total != 3 || ev.Err != nil {
			t.Errorf("event %d = %+v", i, ev)
		}
		if ev.JobID != job.ID {
			t.Errorf("event %d job = %q, want %q", i, ev.JobID, job.ID)
		}
	}
	if sink.events[2].Description != "import config blog.settings" {
		t.Errorf("event description = %q", sink.events[2].Description)
	}
}

func TestRunnerStopsOnFirstFailure(t *testing.T) {
	exec := &fakeExecutor{failOn: "blog.settings", failures: -1}
	sink := &recordSink{}
	job := NewJob("install blog", installOps())

	res, err := NewRunner(exec, WithProgressSink(sink)).Run(context.Background(), job)
	if err == nil {
		t.Fatal("Run() expected error, got nil")
	}
	if !errors.HasCode(err, errors.ErrCodeBatchFailed) {
		t.Errorf("Run() error code = %v, want %v", errors.CodeOf(err), errors.ErrCodeBatchFailed)
	}
	if !errors.HasCode(err, errors.ErrCodeOperationFailed) {
		t.Error("Run() error does not carry the operation failure")
	}

	// Both enables completed; the import failed and nothing ran after.
	wantCalls := []string{"core_content", "blog_module", "blog.settings"}
	if !reflect.DeepEqual(exec.calls, wantCalls) {
		t.Errorf("execution order = %v, want %v", exec.calls, wantCalls)
	}
	if res.FailedIndex != 2 {
		t.Errorf("FailedIndex = %d, want 2", res.FailedIndex)
	}
	if res.FailedOperation == nil || res.FailedOperation.Name != "blog.settings" {
		t.Errorf("FailedOperation = %+v", res.FailedOperation)
	}
	if res.Position != 2 || res.Completed != 2 || res.Done {
		t.Errorf("Result = %+v, want position 2 and not done", res)
	}
	if job.Position != 2 {
		t.Errorf("job position = %d, want 2 (failed operation next)", job.Position)
	}

	last := sink.events[len(sink.events)-1]
	if last.Err == nil || last.Index != 2 {
		t.Errorf("last event = %+v, want failure at index 2", last)
	}
}

func TestRunnerRetryAfterFailure(t *testing.T) {
	// One transient failure: the re-invoked run retries the failed
	// operation and finishes the job.
	exec := &fakeExecutor{failOn: "blog_module", failures: 1}
	job := NewJob("install blog", installOps())
	runner := NewRunner(exec)

	if _, err := runner.Run(context.Background(), job); err == nil {
		t.Fatal("first Run() expected error, got nil")
	}
	res, err := runner.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if !res.Done {
		t.Errorf("Result = %+v, want done", res)
	}
	wantCalls := []string{"core_content", "blog_module", "blog_module", "blog.settings"}
	if !reflect.DeepEqual(exec.calls, wantCalls) {
		t.Errorf("execution order = %v, want %v", exec.calls, wantCalls)
	}
}

func TestRunnerResumesFromPosition(t *testing.T) {
	exec := &fakeExecutor{}
	job := NewJob("install blog", installOps())
	job.Position = 2

	res, err := NewRunner(exec).Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !reflect.DeepEqual(exec.calls, []string{"blog.settings"}) {
		t.Errorf("execution order = %v, want only the last operation", exec.calls)
	}
	if res.Completed != 1 || !res.Done {
		t.Errorf("Result = %+v", res)
	}
}

func TestRunnerBoundedInvocations(t *testing.T) {
	exec := &fakeExecutor{}
	job := NewJob("install blog", installOps())
	runner := NewRunner(exec, WithMaxPerRun(2))

	res, err := runner.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Done || res.Completed != 2 || job.Position != 2 {
		t.Errorf("first bounded run: result %+v, job position %d", res, job.Position)
	}

	res, err = runner.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.Done || res.Completed != 1 {
		t.Errorf("second bounded run: result %+v", res)
	}
	if len(exec.calls) != 3 {
		t.Errorf("total executions = %d, want 3", len(exec.calls))
	}
}

func TestRunnerCanceledContext(t *testing.T) {
	exec := &fakeExecutor{}
	job := NewJob("install blog", installOps())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(exec).Run(ctx, job)
	if err == nil {
		t.Fatal("Run() with canceled context expected error, got nil")
	}
	if !errors.HasCode(err, errors.ErrCodeTimeout) {
		t.Errorf("Run() error code = %v, want %v", errors.CodeOf(err), errors.ErrCodeTimeout)
	}
	if len(exec.calls) != 0 {
		t.Errorf("executions after cancel = %v, want none", exec.calls)
	}
}

func TestRunnerInvalidInputs(t *testing.T) {
	runner := NewRunner(&fakeExecutor{})

	if _, err := runner.Run(context.Background(), nil); err == nil {
		t.Error("Run(nil) expected error, got nil")
	}

	job := NewJob("install blog", installOps())
	job.Position = 7
	_, err := runner.Run(context.Background(), job)
	if err == nil {
		t.Fatal("Run() with out-of-range position expected error, got nil")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidRequest) {
		t.Errorf("Run() error code = %v, want %v", errors.CodeOf(err), errors.ErrCodeInvalidRequest)
	}
}

func TestRunnerEmptyJob(t *testing.T) {
	exec := &fakeExecutor{}
	job := NewJob("nothing to do", nil)

	res, err := NewRunner(exec).Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.Done || res.Total != 0 || len(exec.calls) != 0 {
		t.Errorf("Result = %+v, calls = %v", res, exec.calls)
	}
}
