/*
Copyright The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	Namespace = "gce"

	StatusSuccess = "success"
	StatusError   = "error"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

var (
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "api_requests_total",
			Help:      "Total Compute Engine API requests by operation and status",
		},
		[]string{"operation", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Compute Engine API request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cache_lookups_total",
			Help:      "Cached Compute Engine lookups by operation and result (hit or miss).",
		},
		[]string{"operation", "result"},
	)

	CacheEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "cache_entries",
			Help:      "Number of entries held by the Compute Engine response cache.",
		},
	)
)

func init() {
	metrics.Registry.MustRegister(
		APIRequestsTotal,
		APIRequestDuration,
		CacheLookupsTotal,
		CacheEntries,
	)
}

// RecordAPIRequest records the outcome and latency of one API call. status
// is StatusSuccess or an error classification such as "not_found".
func RecordAPIRequest(operation, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(operation, status).Inc()
	APIRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheLookup counts a cache hit or miss for operation
func RecordCacheLookup(operation string, hit bool) {
	result := CacheMiss
	if hit {
		result = CacheHit
	}
	CacheLookupsTotal.WithLabelValues(operation, result).Inc()
}

// SetCacheEntries reports the current size of the response cache
func SetCacheEntries(count int) {
	CacheEntries.Set(float64(count))
}
