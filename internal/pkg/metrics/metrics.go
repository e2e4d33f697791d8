package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var SourceQueryDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "finrank_source_query_duration_seconds",
		Help:    "fact source query latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"driver", "operation"})

var SourceErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "finrank_source_errors_total",
		Help: "fact source failures converted to empty results",
	}, []string{"operation"})

var RowsReturned = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "finrank_rows_returned",
		Help:    "rows returned per ranking operation",
		Buckets: prometheus.ExponentialBuckets(1, 4, 9),
	}, []string{"operation"})

func init() {
	prometheus.MustRegister(SourceQueryDuration, SourceErrors, RowsReturned)
}

// ObserveQuery records a source query's latency since start
func ObserveQuery(driver, operation string, start time.Time) {
	SourceQueryDuration.WithLabelValues(driver, operation).Observe(time.Since(start).Seconds())
}
