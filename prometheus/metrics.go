package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"dispensary-pos/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   *prometheus.CounterVec

	// Store operation metrics
	StoreOperationDuration prometheus.HistogramVec

	// Catalog metrics
	ProductOperationsCounter prometheus.CounterVec
	ProductInventoryGauge    prometheus.GaugeVec

	// Register metrics
	CheckoutsCounter prometheus.CounterVec
	SaleAmount       prometheus.Histogram
	CartItemsPerSale prometheus.Histogram
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
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

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of employee login attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful employee logins",
		},
	)

	AuthErrorsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of failed employee logins",
		},
		[]string{"reason"},
	)

	StoreOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_store_operation_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)

	ProductInventoryGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_product_inventory",
			Help: "Current inventory level for products",
		},
		[]string{"product_id", "product_name", "category"},
	)

	CheckoutsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_checkouts_total",
			Help: "Total number of register checkouts",
		},
		[]string{"payment_method"},
	)

	SaleAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_sale_amount",
			Help:    "Checkout totals",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	CartItemsPerSale = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_cart_items_per_sale",
			Help:    "Number of cart lines per checkout",
			Buckets: prometheus.LinearBuckets(1, 1, 15),
		},
	)
}

// TrackStoreOperation returns a function that records the duration of a
// persistence operation.
func TrackStoreOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		StoreOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordAuthError increments the counter for a failed login reason
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// UpdateProductInventory updates the gauge for product inventory
func UpdateProductInventory(productID string, productName string, category string, count float64) {
	ProductInventoryGauge.WithLabelValues(productID, productName, category).Set(count)
}

// RecordCheckout records a completed register sale
func RecordCheckout(paymentMethod string, total float64, lines int) {
	CheckoutsCounter.WithLabelValues(paymentMethod).Inc()
	SaleAmount.Observe(total)
	CartItemsPerSale.Observe(float64(lines))
}
