package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tokengateway/internal/adapters/logger"
	httpports "tokengateway/internal/ports/http"
)

const (
	greeting    = "Hello, API!"
	serviceName = "token-gateway"
	version     = "1.0.0"
)

var errNoResult = errors.New("token data service returned no result")

// HandlerAdapter adapts domain services to HTTP handlers
type HandlerAdapter struct {
	tokenDataService httpports.TokenDataService
	logger           *logger.Logger
}

// NewHandlerAdapter creates a new handler adapter
func NewHandlerAdapter(tokenDataService httpports.TokenDataService, logger *logger.Logger) *HandlerAdapter {
	return &HandlerAdapter{
		tokenDataService: tokenDataService,
		logger:           logger,
	}
}

// Root godoc
//
//	@Summary	Greeting
//	@Produce	plain
//	@Success	200	{string}	string	"Hello, API!"
//	@Failure	429	{object}	httpports.ErrorResponse
//	@Router		/ [get]
func (h *HandlerAdapter) Root(c echo.Context) error {
	return c.String(http.StatusOK, greeting)
}

// GetTokenData godoc
//
//	@Summary	Token price and metadata
//	@Produce	json
//	@Param		tokenAddress	path		string	true	"Token contract address"
//	@Param		Authorization	header		string	true	"Shared secret"
//	@Success	200				{object}	httpports.TokenData
//	@Failure	403				{object}	httpports.ErrorResponse
//	@Failure	429				{object}	httpports.ErrorResponse
//	@Failure	500				{object}	httpports.TokenDataError
//	@Router		/api/tokenData/{tokenAddress} [get]
func (h *HandlerAdapter) GetTokenData(c echo.Context) error {
	address := c.Param("tokenAddress")

	result := h.tokenDataService.GetTokenData(c.Request().Context(), address)
	if result == nil {
		return errNoResult
	}

	if result.Failed() {
		h.logger.Warn("Responding with upstream failure",
			zap.String("address", address),
			zap.String("op", result.Failure.Op),
		)
		return c.JSON(http.StatusInternalServerError, httpports.ToHTTPTokenDataError(result.Failure))
	}

	return c.JSON(http.StatusOK, httpports.ToHTTPTokenData(result.Data))
}

// HealthCheck godoc
//
//	@Summary	Liveness probe
//	@Produce	json
//	@Success	200	{object}	httpports.HealthStatus
//	@Router		/health [get]
func (h *HandlerAdapter) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, httpports.HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   serviceName,
		Version:   version,
	})
}
