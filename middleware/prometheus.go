package middleware

import (
	"net/http"

	"payexsync/service"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payexsync_requests_total",
			Help: "Total number of requests processed by the payexsync web server.",
		},
		[]string{"path", "status"},
	)

	ErrorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payexsync_requests_errors_total",
			Help: "Total number of error requests processed by the payexsync web server.",
		},
		[]string{"path", "status"},
	)
)

// PrometheusInit registers the HTTP and workflow metrics.
func PrometheusInit() {
	prometheus.MustRegister(RequestCount)
	prometheus.MustRegister(ErrorCount)
	prometheus.MustRegister(service.WorkflowOutcomes)
}

// TrackMetrics counts requests per route pattern.
func TrackMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		path := c.Route().Path

		RequestCount.WithLabelValues(path, http.StatusText(status)).Inc()
		if status >= 400 {
			ErrorCount.WithLabelValues(path, http.StatusText(status)).Inc()
		}
		return err
	}
}
