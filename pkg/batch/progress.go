/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Event describes one operation's outcome during a run.
type Event struct {
	JobID       string
	Index       int
	Total       int
	Description string
	Recipe      string

	// Err is set when the operation failed; the run stops after a
	// failure event.
	Err error
}

// ProgressSink receives per-operation progress. Implementations must be
// safe to call from the runner goroutine; the runner never calls a sink
// concurrently.
type ProgressSink interface {
	Report(ev Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Report(Event) {}

// SlogSink logs events through a structured logger.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink over logger; nil means slog.Default().
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Report(ev Event) {
	if ev.Err != nil {
		s.logger.Error("operation failed",
			"job", ev.JobID,
			"step", fmt.Sprintf("%d/%d", ev.Index+1, ev.Total),
			"operation", ev.Description,
			"recipe", ev.Recipe,
			"error", ev.Err)
		return
	}
	s.logger.Info("operation completed",
		"job", ev.JobID,
		"step", fmt.Sprintf("%d/%d", ev.Index+1, ev.Total),
		"operation", ev.Description,
		"recipe", ev.Recipe)
}

// ConsoleSink prints progress lines, throttled so long jobs do not
// flood the terminal. The first and last operations and any failure are
// always printed.
type ConsoleSink struct {
	w       io.Writer
	limiter *rate.Limiter
}

// NewConsoleSink creates a console sink writing to w, printing at most
// one intermediate line per interval. interval <= 0 disables
// throttling.
func NewConsoleSink(w io.Writer, interval time.Duration) *ConsoleSink {
	s := &ConsoleSink{w: w}
	if interval > 0 {
		s.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return s
}

func (s *ConsoleSink) Report(ev Event) {
	if ev.Err != nil {
		fmt.Fprintf(s.w, "[%d/%d] FAILED %s: %v\n", ev.Index+1, ev.Total, ev.Description, ev.Err)
		return
	}
	boundary := ev.Index == 0 || ev.Index == ev.Total-1
	if !boundary && s.limiter != nil && !s.limiter.Allow() {
		return
	}
	fmt.Fprintf(s.w, "[%d/%d] %s\n", ev.Index+1, ev.Total, ev.Description)
}

// Filtered wraps a sink, forwarding only events keep approves. It is
// the explicit-injection replacement for intercepting a shared message
// service: the caller that wants fewer messages composes the filter in.
func Filtered(sink ProgressSink, keep func(Event) bool) ProgressSink {
	return &filteredSink{sink: sink, keep: keep}
}

type filteredSink struct {
	sink ProgressSink
	keep func(Event) bool
}

func (f *filteredSink) Report(ev Event) {
	if f.keep == nil || f.keep(ev) {
		f.sink.Report(ev)
	}
}

// Multi fans events out to several sinks in order.
func Multi(sinks ...ProgressSink) ProgressSink {
	return multiSink(sinks)
}

type multiSink []ProgressSink

func (m multiSink) Report(ev Event) {
	for _, s := range m {
		s.Report(ev)
	}
}
