/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package plan

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	expandDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cookbook_plan_expand_duration_seconds",
			Help:    "Duration of recipe expansion in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	planOperations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cookbook_plan_operations",
			Help:    "Number of operations per expanded plan",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		},
	)
)
