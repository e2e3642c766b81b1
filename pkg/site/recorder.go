/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package site

import (
	"context"
	"sync"
)

// ActionCall records one RunAction invocation.
type ActionCall struct {
	Name string
	Args map[string]any
}

// Recorder is an in-memory Target that records every call and mutates
// nothing. It backs dry runs and tests.
type Recorder struct {
	mu       sync.Mutex
	enabled  []string
	enabledS map[string]bool
	configs  map[string]map[string]any
	actions  []ActionCall
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		enabledS: make(map[string]bool),
		configs:  make(map[string]map[string]any),
	}
}

func (r *Recorder) EnableExtension(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enabledS[name] {
		return nil
	}
	r.enabledS[name] = true
	r.enabled = append(r.enabled, name)
	return nil
}

func (r *Recorder) ImportConfig(_ context.Context, name string, data map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[name] = data
	return nil
}

func (r *Recorder) RunAction(_ context.Context, name string, args map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, ActionCall{Name: name, Args: args})
	return nil
}

// Enabled returns the extensions enabled, in first-enable order.
func (r *Recorder) Enabled() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.enabled))
	copy(out, r.enabled)
	return out
}

// Configs returns the imported config payloads by name.
func (r *Recorder) Configs() map[string]map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]map[string]any, len(r.configs))
	for k, v := range r.configs {
		out[k] = v
	}
	return out
}

// Actions returns the recorded action calls in order.
func (r *Recorder) Actions() []ActionCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ActionCall, len(r.actions))
	copy(out, r.actions)
	return out
}
