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

package recipe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeIndexed   = "indexed"
	outcomeInvalid   = "invalid"
	outcomeFailed    = "failed"
	outcomeUnhandled = "unhandled"
)

var (
	// Index build metrics
	indexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipedex_index_build_duration_seconds",
			Help:    "Duration of recipe index builds in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)
	indexBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipedex_index_builds_total",
			Help: "Total number of recipe index builds by result",
		},
		[]string{"result"},
	)
	indexRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipedex_index_records_total",
			Help: "Total number of recipe records processed by outcome",
		},
		[]string{"outcome"},
	)

	// Query metrics
	queriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipedex_queries_total",
			Help: "Total number of index queries by operation",
		},
		[]string{"operation"},
	)
	catalystExpansionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipedex_catalyst_expansions_total",
			Help: "Total number of recipe queries expanded to a whole category by a catalyst",
		},
	)
)
