package server

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	loggeradapter "tokengateway/internal/adapters/logger"
	"tokengateway/internal/adapters/metrics"
	httpports "tokengateway/internal/ports/http"
)

const (
	internalErrorMessage = "Internal Server Error"
	rateLimitMessage     = "Too many requests, please try again later."
)

// AuthGate rejects requests whose Authorization header is not exactly secret.
// It runs before the handler, so a rejected request never reaches upstream.
func AuthGate(secret string, m *metrics.Metrics, logger *loggeradapter.Logger) echo.MiddlewareFunc {
	want := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := []byte(c.Request().Header.Get(echo.HeaderAuthorization))
			if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
				m.AuthFailed()
				logger.Debug("Rejected request with invalid authorization",
					zap.String("path", c.Request().URL.Path),
					zap.String("remote_ip", c.RealIP()),
					zap.Bool("header_present", len(got) > 0),
				)
				return echo.NewHTTPError(http.StatusForbidden)
			}
			return next(c)
		}
	}
}

// rateLimiter bounds requests per client IP using store.
func rateLimiter(store middleware.RateLimiterStore, m *metrics.Metrics, logger *loggeradapter.Logger) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			if err != nil {
				return fmt.Errorf("rate limiter store: %w", err)
			}
			m.RateLimited()
			logger.Debug("Rate limit exceeded",
				zap.String("client", identifier),
				zap.String("path", c.Request().URL.Path),
			)
			return echo.NewHTTPError(http.StatusTooManyRequests, rateLimitMessage)
		},
	})
}

func requestLogger(logger *loggeradapter.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("Request handled", fields...)
			return nil
		},
	})
}

// requestMetrics records request counts and latency by route template.
func requestMetrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				}
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveRequest(c.Request().Method, route, status, time.Since(start))
			return err
		}
	}
}

// recoveredPanic carries a recovered panic and its stack to handleError.
type recoveredPanic struct {
	err   error
	stack []byte
}

func (p *recoveredPanic) Error() string {
	return "panic: " + p.err.Error()
}

func (p *recoveredPanic) Unwrap() error {
	return p.err
}

// handleError is the last-resort responder. echo.HTTPError values keep their
// status; anything else is logged and answered with a generic 500.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		s.respondHTTPError(c, he)
		return
	}

	fields := []zap.Field{
		zap.String("method", c.Request().Method),
		zap.String("path", c.Request().URL.Path),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.Error(err),
	}
	var p *recoveredPanic
	if errors.As(err, &p) {
		fields = append(fields, zap.ByteString("stack", p.stack))
	}
	s.logger.Error("Unhandled request error", fields...)

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(http.StatusInternalServerError)
	} else {
		err = c.String(http.StatusInternalServerError, internalErrorMessage)
	}
	if err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}

func (s *Server) respondHTTPError(c echo.Context, he *echo.HTTPError) {
	resp := httpports.ErrorResponse{
		Error: http.StatusText(he.Code),
	}
	if msg := fmt.Sprint(he.Message); msg != resp.Error {
		resp.Message = msg
	}
	if he.Internal != nil {
		s.logger.Debug("HTTP error", zap.Int("status", he.Code), zap.Error(he.Internal))
	}

	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, resp)
	}
	if err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}
