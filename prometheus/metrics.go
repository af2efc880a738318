package prometheus

import (
	"time"

	"shoppinglist-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// API key auth metrics
	AuthFailuresCounter prometheus.Counter

	// Catalog metrics
	ItemOperationsCounter prometheus.CounterVec

	// Availability metrics
	AvailabilityTogglesCounter prometheus.CounterVec

	// Buy list metrics
	BuyListSizeGauge prometheus.Gauge

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthFailuresCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_failures_total",
			Help: "Total number of rejected API key checks",
		},
	)

	ItemOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_item_operations_total",
			Help: "Total number of master item operations",
		},
		[]string{"operation"},
	)

	AvailabilityTogglesCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_availability_toggles_total",
			Help: "Total number of availability toggles",
		},
		[]string{"state"},
	)

	BuyListSizeGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_buy_list_size",
			Help: "Number of items currently on the buy list",
		},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordItemOperation increments the counter for master item operations
func RecordItemOperation(operation string) {
	ItemOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordAvailabilityToggle increments the toggle counter for the resulting state
func RecordAvailabilityToggle(isAvailable bool) {
	state := "unavailable"
	if isAvailable {
		state = "available"
	}
	AvailabilityTogglesCounter.WithLabelValues(state).Inc()
}

// UpdateBuyListSize sets the gauge for the current buy list size
func UpdateBuyListSize(size int) {
	BuyListSizeGauge.Set(float64(size))
}
