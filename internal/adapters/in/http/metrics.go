package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts requests and measures their latency per route.
type Metrics struct {
	requests  *prometheus.CounterVec
	latencyMS *prometheus.HistogramVec
	gatherer  prometheus.Gatherer
}

// NewMetrics registers the HTTP collectors on registry.
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ordering",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ordering",
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler", "method"})

	for _, c := range []prometheus.Collector{requests, latency} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &Metrics{requests: requests, latencyMS: latency, gatherer: registry}, nil
}

// Middleware records every request that went through routing.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			handler := ctx.Path()
			if handler == "" {
				handler = "unmatched"
			}
			method := ctx.Request().Method

			status := ctx.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				}
			}

			m.requests.WithLabelValues(handler, method, strconv.Itoa(status)).Inc()
			m.latencyMS.WithLabelValues(handler, method).Observe(float64(time.Since(start).Milliseconds()))
			return err
		}
	}
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
