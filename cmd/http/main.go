package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tokengateway/config"
	"tokengateway/internal/adapters/cache"
	httpserver "tokengateway/internal/adapters/http/server"
	loggeradapter "tokengateway/internal/adapters/logger"
	"tokengateway/internal/adapters/metrics"
	moralisadapter "tokengateway/internal/adapters/moralis"
	"tokengateway/internal/application/ratelimiter"
	"tokengateway/internal/application/tokendata"
	"tokengateway/internal/domain/chain"
	"tokengateway/internal/domain/token"
)

const version = "1.0.0"

func main() {
	// A missing .env is fine; the environment may already be populated.
	envErr := godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger based on environment
	logger, err := loggeradapter.NewLogger(cfg.IsDevelopment(), cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		// Sync fails on some terminals; nothing useful to do about it on exit.
		_ = logger.Sync()
	}()

	if envErr != nil {
		logger.Debug("No .env file loaded", zap.Error(envErr))
	}

	logger.Info("Starting application",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", version),
	)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.NewMetrics("")
	}

	provider := newProvider(cfg, m, logger)

	tokenDataService := tokendata.NewService(provider, chain.ID(cfg.Upstream.Chain), logger.Named("tokendata"))

	// One sliding-window limiter per client IP
	limiterStore := ratelimiter.NewStore(
		cache.NewCache[string, *ratelimiter.RateLimiter](1024),
		cfg.RateLimit.MaxRequests,
		cfg.RateLimit.Window,
		nil,
	)

	// Initialize HTTP handler adapter
	handlerAdapter := httpserver.NewHandlerAdapter(tokenDataService, logger)

	// Initialize HTTP server
	serverConfig := httpserver.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		AuthSecret:      cfg.Auth.Secret,
		TrustProxy:      cfg.Server.TrustProxy,
		SwaggerEnabled:  cfg.Server.SwaggerEnabled,
		MetricsEnabled:  cfg.Metrics.Enabled,
	}

	server := httpserver.NewServer(serverConfig, handlerAdapter, limiterStore, m, logger.Named("http"))

	// Log server configuration
	logger.Info("Server configured",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("upstream_provider", cfg.Upstream.Provider),
		zap.String("chain", cfg.Upstream.Chain),
		zap.Int("rate_limit_max_requests", cfg.RateLimit.MaxRequests),
		zap.Duration("rate_limit_window", cfg.RateLimit.Window),
		zap.Bool("trust_proxy", cfg.Server.TrustProxy),
	)

	// Start server with graceful shutdown
	if err := server.StartWithGracefulShutdown(); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}

	logger.Info("Application stopped gracefully")
}

// newProvider picks the upstream token data provider from configuration.
func newProvider(cfg *config.Config, m *metrics.Metrics, logger *loggeradapter.Logger) token.Provider {
	if cfg.Upstream.Provider == config.ProviderMock {
		logger.Warn("Using mock upstream provider, token data is not real")
		return moralisadapter.NewMockProvider()
	}

	httpClient := &http.Client{
		Timeout: cfg.Upstream.RequestTimeout,
	}
	client := moralisadapter.NewClient(httpClient, cfg.Upstream.ServerURL, cfg.Upstream.AppID)

	logger.Info("Using Moralis upstream provider", zap.String("server_url", cfg.Upstream.ServerURL))
	return moralisadapter.NewProvider(client, m)
}
