/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbook_batch_operations_total",
			Help: "Total number of batch operations by status",
		},
		[]string{"status"},
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cookbook_batch_run_duration_seconds",
			Help:    "Duration of batch run invocations in seconds",
			Buckets: []float64{0.01, 0.1, 1, 5, 10, 30, 60, 120, 300},
		},
	)
)
