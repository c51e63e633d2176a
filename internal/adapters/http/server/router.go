package server

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "tokengateway/docs"
	loggeradapter "tokengateway/internal/adapters/logger"
	"tokengateway/internal/adapters/metrics"
)

// registerRoutes registers all HTTP routes using Echo
func registerRoutes(e *echo.Echo, handler *HandlerAdapter, cfg Config, m *metrics.Metrics, logger *loggeradapter.Logger) {
	e.GET("/", handler.Root)
	e.GET("/health", handler.HealthCheck)

	if cfg.MetricsEnabled && m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	// Swagger documentation
	if cfg.SwaggerEnabled {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := e.Group("/api")
	api.GET("/tokenData/:tokenAddress", handler.GetTokenData, AuthGate(cfg.AuthSecret, m, logger))
}
