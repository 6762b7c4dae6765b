// Package metrics defines Prometheus metrics for the kingraph exporter.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kingraph_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kingraph_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kingraph_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	ExportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kingraph_exports_total",
			Help: "Total export runs by outcome",
		},
		[]string{"status"},
	)

	ExportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kingraph_export_duration_seconds",
			Help:    "Traversal plus serialization duration per export run",
			Buckets: prometheus.DefBuckets,
		},
	)

	ExportedNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "kingraph_exported_nodes",
			Help: "Node count of the most recent export",
		},
	)

	ExportedLinks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "kingraph_exported_links",
			Help: "Link count of the most recent export",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		ExportsTotal, ExportDuration,
		ExportedNodes, ExportedLinks,
	)
}
