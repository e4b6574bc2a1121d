// Package metrics holds the prometheus registry and the collectors of the
// service. The registry is private to keep scrapes free of collectors
// registered by imported libraries.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

//nolint:gochecknoinits // Process collectors must exist before the first scrape.
func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

var (
	// SetupCompletions counts finished project setups per ingest type.
	SetupCompletions = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskbases_setup_completions_total",
			Help: "Finished project setups, labelled by ingest type.",
		},
		[]string{"ingest_type"},
	)

	// CSVRowsImported counts risk rows persisted through the CSV route.
	CSVRowsImported = promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Name: "riskbases_csv_rows_imported_total",
			Help: "Risk rows persisted through the CSV import route.",
		},
	)

	requestDuration = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "riskbases_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Handler exposes the registry for scraping.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RequestObserver records per-request latency. Unmatched routes are grouped
// under their raw path to keep the label set bounded by the route table.
func RequestObserver() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
