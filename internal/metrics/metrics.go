package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_requests_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status_code"},
	)

	// Upstream SaaS call metrics (notion, dynamodb, llm, smtp)
	upstreamCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_call_duration_seconds",
			Help:    "Upstream API call duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		},
		[]string{"service", "operation", "status"},
	)

	// Password gate metrics
	gateAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gate_attempts_total",
			Help: "Total number of password gate attempts by outcome",
		},
		[]string{"outcome"}, // granted, denied, blocked, store_error
	)

	// Registration metrics
	registrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of registration submissions by outcome",
		},
		[]string{"outcome"}, // created, duplicate, failed
	)

	confirmationEmailsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "confirmation_emails_total",
			Help: "Total number of confirmation emails by status",
		},
		[]string{"status"}, // sent, failed, skipped
	)

	registerOnce sync.Once
)

// Init registers the collectors with the default registry. Safe to call
// more than once.
func Init() error {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestsTotal,
			httpRequestDuration,
			upstreamCallDuration,
			gateAttemptsTotal,
			registrationsTotal,
			confirmationEmailsTotal,
		)
	})
	return nil
}

// HTTPMetricsMiddleware records HTTP metrics
func HTTPMetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Process request
		err := c.Next()

		// Record metrics
		duration := time.Since(start).Seconds()
		method := c.Method()
		route := c.Route().Path
		if route == "" {
			route = c.Path()
		}
		statusCode := strconv.Itoa(c.Response().StatusCode())

		httpRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
		httpRequestDuration.WithLabelValues(method, route, statusCode).Observe(duration)

		return err
	}
}

// RecordUpstreamCall records metrics for calls to external services
func RecordUpstreamCall(service, operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	upstreamCallDuration.WithLabelValues(service, operation, status).Observe(duration.Seconds())
}

// RecordGateAttempt records a password gate outcome
func RecordGateAttempt(outcome string) {
	gateAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordRegistration records a registration outcome
func RecordRegistration(outcome string) {
	registrationsTotal.WithLabelValues(outcome).Inc()
}

// RecordConfirmationEmail records a confirmation email outcome
func RecordConfirmationEmail(status string) {
	confirmationEmailsTotal.WithLabelValues(status).Inc()
}

// PrometheusHandler returns the Prometheus metrics handler
func PrometheusHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
