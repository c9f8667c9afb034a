// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Time spent on the startup bulk load of the movies table",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source"},
	)

	DatasetLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_load_errors_total",
			Help: "Failed bulk loads of the movies table",
		},
		[]string{"source"},
	)

	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Number of movies held in memory",
		},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	FilteredViewSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filtered_view_rows",
			Help:    "Rows matching the filter of a dashboard request",
			Buckets: []float64{0, 1, 10, 100, 500, 1000, 5000, 10000},
		},
		[]string{"page"},
	)

	PageChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_page_changes_total",
			Help: "Page switches recorded in user sessions",
		},
		[]string{"page"},
	)
)

// RecordDatasetLoad records one bulk load attempt.
func RecordDatasetLoad(source string, d time.Duration, records int, err error) {
	DatasetLoadDuration.WithLabelValues(source).Observe(d.Seconds())
	if err != nil {
		DatasetLoadErrors.WithLabelValues(source).Inc()
		return
	}
	DatasetRecords.Set(float64(records))
}

// RecordAPIRequest records a served request.
func RecordAPIRequest(method, endpoint string, status int, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

// RecordFilteredView records the size of a filtered view for a page.
func RecordFilteredView(page string, rows int) {
	FilteredViewSize.WithLabelValues(page).Observe(float64(rows))
}

// RecordPageChange counts a session switching to page.
func RecordPageChange(page string) {
	PageChanges.WithLabelValues(page).Inc()
}
