package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// PIN login attempts
	PinLoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_pin_login_total",
			Help: "Total number of PIN login attempts",
		},
	)

	// Google login attempts (stubbed flow)
	GoogleLoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_google_login_total",
			Help: "Total number of Google login attempts",
		},
	)

	// User directory operations
	UserOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_user_operations_total",
			Help: "Total number of user directory operations",
		},
		[]string{"operation"}, // "create", "get", "list", "update", "delete"
	)

	// Tenant registry operations
	TenantOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_tenant_operations_total",
			Help: "Total number of tenant registry operations",
		},
		[]string{"operation"},
	)

	// Catalog operations by entity
	CatalogOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_catalog_operations_total",
			Help: "Total number of category/supplier operations",
		},
		[]string{"entity", "operation"},
	)

	// Inventory item operations
	ItemOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_item_operations_total",
			Help: "Total number of inventory item operations",
		},
		[]string{"operation"},
	)

	// Stock transactions appended, by type
	StockTransactionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_stock_transactions_total",
			Help: "Total number of stock transactions appended",
		},
		[]string{"type"}, // "IN", "OUT_USE", "OUT_WASTE", "AUDIT"
	)

	// Image storage operations
	ImageOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_image_operations_total",
			Help: "Total number of image storage operations",
		},
		[]string{"operation"}, // "upload", "delete", "health"
	)

	// Error counter by type
	ErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_errors_total",
			Help: "Total number of request errors",
		},
		[]string{"type"}, // "validation", "conflict", "not_found", "unauthorized", "storage"
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// Items per tenant
	ItemsPerTenantGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inventory_items_per_tenant",
			Help: "Number of inventory items per tenant",
		},
		[]string{"tenant_id"},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inventory_info",
			Help: "Information about the inventory service",
		},
		[]string{"version"},
	)
)

func init() {
	prometheus.MustRegister(PinLoginCounter)
	prometheus.MustRegister(GoogleLoginCounter)
	prometheus.MustRegister(UserOperationCounter)
	prometheus.MustRegister(TenantOperationCounter)
	prometheus.MustRegister(CatalogOperationCounter)
	prometheus.MustRegister(ItemOperationCounter)
	prometheus.MustRegister(StockTransactionCounter)
	prometheus.MustRegister(ImageOperationCounter)
	prometheus.MustRegister(ErrorCounter)
	prometheus.MustRegister(HTTPRequestCounter)

	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	prometheus.MustRegister(ItemsPerTenantGauge)
	prometheus.MustRegister(InfoGauge)

	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations; use as
// defer TrackDBOperation("insert")(time.Now())
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// RecordError records a request error by type
func RecordError(errorType string) {
	ErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordUserOperation records a user directory operation
func RecordUserOperation(operation string) {
	UserOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordTenantOperation records a tenant registry operation
func RecordTenantOperation(operation string) {
	TenantOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordCatalogOperation records a category or supplier operation
func RecordCatalogOperation(entity, operation string) {
	CatalogOperationCounter.With(prometheus.Labels{"entity": entity, "operation": operation}).Inc()
}

// RecordItemOperation records an inventory item operation
func RecordItemOperation(operation string) {
	ItemOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordStockTransaction records an appended stock transaction by type
func RecordStockTransaction(transactionType string) {
	StockTransactionCounter.With(prometheus.Labels{"type": transactionType}).Inc()
}

// RecordImageOperation records an image storage operation
func RecordImageOperation(operation string) {
	ImageOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// UpdateItemsPerTenant updates the items per tenant gauge
func UpdateItemsPerTenant(tenantID uint, count int) {
	ItemsPerTenantGauge.With(prometheus.Labels{
		"tenant_id": strconv.FormatUint(uint64(tenantID), 10),
	}).Set(float64(count))
}
