package http

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"ordering/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// DefaultRequestTimeout bounds request handling when no timeout is configured.
const DefaultRequestTimeout = 5 * time.Second

const ordersPathPrefix = "/orders"

// RouterConfig holds the router dependencies that are not use cases.
type RouterConfig struct {
	RequestTimeout time.Duration
	Registry       *prometheus.Registry
	Logger         *slog.Logger
}

// NewRouter builds the echo instance serving the orders API, /health, /metrics and
// /swagger/*.
//
// Middleware order for /orders routes:
//  1. recover and request logging
//  2. request timeout, propagated through the request context
//  3. metrics
//  4. principal resolution (401)
//  5. OpenAPI request validation (400)
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(swagger)
	if err != nil {
		return nil, err
	}
	metrics, err := NewMetrics(cfg.Registry)
	if err != nil {
		return nil, err
	}
	registerSwaggerDoc()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(requestLogger(cfg.Logger))
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: cfg.RequestTimeout,
	}))
	e.Use(metrics.Middleware())
	e.Use(PrincipalMiddleware(skipOutsideOrders))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	return e, nil
}

func skipOutsideOrders(ctx echo.Context) bool {
	return !strings.HasPrefix(ctx.Path(), ordersPathPrefix)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURIPath:  true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"path", v.URIPath,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.LogAttrs(c.Request().Context(), slog.LevelWarn, "request", slog.Group("http", attrs...),
					slog.String("error", v.Error.Error()))
				return nil
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", slog.Group("http", attrs...))
			return nil
		},
	})
}

// swaggerDoc serves the embedded OpenAPI document to echo-swagger.
type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	return string(servers.RawSpec())
}

var registerSwaggerOnce sync.Once

func registerSwaggerDoc() {
	registerSwaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{})
	})
}
