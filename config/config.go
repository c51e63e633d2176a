package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	ProviderMoralis = "moralis"
	ProviderMock    = "mock"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Upstream  UpstreamConfig
	Metrics   MetricsConfig
}

type AppConfig struct {
	Environment string // "development" or "production"
	LogLevel    string
}

type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	TrustProxy      bool
	SwaggerEnabled  bool
}

type AuthConfig struct {
	Secret string
}

type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

type UpstreamConfig struct {
	Provider       string // "moralis" or "mock"
	ServerURL      string
	AppID          string
	Chain          string
	RequestTimeout time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		App: AppConfig{
			Environment: getEnv("APP_ENV", "production"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", ""),
			Port:            getEnv("PORT", "3000"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			TrustProxy:      getBoolEnv("SERVER_TRUST_PROXY", false),
			SwaggerEnabled:  getBoolEnv("SWAGGER_ENABLED", true),
		},
		Auth: AuthConfig{
			Secret: os.Getenv("AUTH_SECRET"),
		},
		RateLimit: RateLimitConfig{
			MaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
			Window:      getDurationEnv("RATE_LIMIT_WINDOW", 15*time.Minute),
		},
		Upstream: UpstreamConfig{
			Provider:       getEnv("UPSTREAM_PROVIDER", ProviderMoralis),
			ServerURL:      getEnv("MORALIS_SERVER_URL", ""),
			AppID:          getEnv("MORALIS_APP_ID", ""),
			Chain:          getEnv("UPSTREAM_CHAIN", "eth"),
			RequestTimeout: getDurationEnv("UPSTREAM_REQUEST_TIMEOUT", 10*time.Second),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolEnv("METRICS_ENABLED", true),
		},
	}
}

// Validate reports the first configuration problem that prevents startup.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}

	if c.Auth.Secret == "" {
		return errors.New("AUTH_SECRET is required")
	}

	if c.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("invalid rate limit: %d (must be positive)", c.RateLimit.MaxRequests)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("invalid rate limit window: %s (must be positive)", c.RateLimit.Window)
	}

	if c.Upstream.Chain == "" {
		return errors.New("upstream chain is required")
	}

	switch c.Upstream.Provider {
	case ProviderMoralis:
		if c.Upstream.ServerURL == "" {
			return errors.New("MORALIS_SERVER_URL is required for the moralis provider")
		}
		if c.Upstream.AppID == "" {
			return errors.New("MORALIS_APP_ID is required for the moralis provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("invalid upstream provider: %s (must be 'moralis' or 'mock')", c.Upstream.Provider)
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
