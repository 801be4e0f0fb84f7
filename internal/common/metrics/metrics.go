// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IconDispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "icon_dispatch_total",
			Help: "Total number of dispatch calls by the tier that produced the content",
		},
		[]string{"tier"},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "icon_upstream_requests_total",
			Help: "Total number of requests to the upstream icon catalogue",
		},
		[]string{"kind", "outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "icon_upstream_request_duration_seconds",
			Help: "Duration of upstream catalogue requests in seconds",
		},
		[]string{"kind"},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "icon_cache_requests_total",
			Help: "Total number of icon cache lookups",
		},
		[]string{"result"},
	)

	RegistryEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "icon_registry_entries",
			Help: "Number of entries in the loaded icon registry",
		},
	)
)
