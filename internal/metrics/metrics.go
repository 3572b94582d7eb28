// Package metrics defines Prometheus metrics for wikipath.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wikipath_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wikipath_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wikipath_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wikipath_searches_total",
			Help: "Path searches by algorithm and outcome",
		},
		[]string{"algorithm", "outcome"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wikipath_search_duration_seconds",
			Help:    "Path search duration in seconds, title resolution included",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"algorithm"},
	)

	SearchLookups = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wikipath_search_graph_lookups",
			Help:    "Neighbor lookups performed per path search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"algorithm"},
	)

	StreamConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wikipath_stream_connections",
			Help: "Active path stream WebSocket connections",
		},
	)

	ArticleCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wikipath_articles_total",
			Help: "Total article count",
		},
	)

	LinkCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wikipath_links_total",
			Help: "Total link count",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		SearchesTotal, SearchDuration, SearchLookups,
		StreamConnections,
		ArticleCount, LinkCount,
	)
}
