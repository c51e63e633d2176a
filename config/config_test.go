package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "AUTH_SECRET", "RATE_LIMIT_MAX_REQUESTS", "RATE_LIMIT_WINDOW",
		"UPSTREAM_PROVIDER", "UPSTREAM_CHAIN", "SERVER_TRUST_PROXY",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Server.Port != "3000" {
		t.Errorf("Load() Server.Port = %q, want 3000", cfg.Server.Port)
	}
	if cfg.RateLimit.MaxRequests != 100 {
		t.Errorf("Load() RateLimit.MaxRequests = %d, want 100", cfg.RateLimit.MaxRequests)
	}
	if cfg.RateLimit.Window != 15*time.Minute {
		t.Errorf("Load() RateLimit.Window = %v, want 15m", cfg.RateLimit.Window)
	}
	if cfg.Upstream.Provider != ProviderMoralis {
		t.Errorf("Load() Upstream.Provider = %q, want %q", cfg.Upstream.Provider, ProviderMoralis)
	}
	if cfg.Upstream.Chain != "eth" {
		t.Errorf("Load() Upstream.Chain = %q, want eth", cfg.Upstream.Chain)
	}
	if cfg.Server.TrustProxy {
		t.Error("Load() Server.TrustProxy = true, want false")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("AUTH_SECRET", "s3cret")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("MORALIS_SERVER_URL", "https://example.moralis.io:2053/server")
	t.Setenv("MORALIS_APP_ID", "app-id")
	t.Setenv("UPSTREAM_CHAIN", "bsc")
	t.Setenv("SERVER_TRUST_PROXY", "true")

	cfg := Load()

	if cfg.Server.Port != "8081" {
		t.Errorf("Load() Server.Port = %q, want 8081", cfg.Server.Port)
	}
	if cfg.Auth.Secret != "s3cret" {
		t.Errorf("Load() Auth.Secret = %q, want s3cret", cfg.Auth.Secret)
	}
	if cfg.RateLimit.MaxRequests != 5 || cfg.RateLimit.Window != 30*time.Second {
		t.Errorf("Load() RateLimit = %+v, want 5 per 30s", cfg.RateLimit)
	}
	if cfg.Upstream.ServerURL != "https://example.moralis.io:2053/server" || cfg.Upstream.AppID != "app-id" {
		t.Errorf("Load() Upstream = %+v", cfg.Upstream)
	}
	if cfg.Upstream.Chain != "bsc" {
		t.Errorf("Load() Upstream.Chain = %q, want bsc", cfg.Upstream.Chain)
	}
	if !cfg.Server.TrustProxy {
		t.Error("Load() Server.TrustProxy = false, want true")
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "lots")
	t.Setenv("RATE_LIMIT_WINDOW", "forever")

	cfg := Load()

	if cfg.RateLimit.MaxRequests != 100 {
		t.Errorf("Load() RateLimit.MaxRequests = %d, want default 100", cfg.RateLimit.MaxRequests)
	}
	if cfg.RateLimit.Window != 15*time.Minute {
		t.Errorf("Load() RateLimit.Window = %v, want default 15m", cfg.RateLimit.Window)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "3000"},
			Auth:      AuthConfig{Secret: "secret"},
			RateLimit: RateLimitConfig{MaxRequests: 100, Window: 15 * time.Minute},
			Upstream: UpstreamConfig{
				Provider:  ProviderMoralis,
				ServerURL: "https://example.moralis.io/server",
				AppID:     "app",
				Chain:     "eth",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "mock provider needs no credentials", mutate: func(c *Config) {
			c.Upstream = UpstreamConfig{Provider: ProviderMock, Chain: "eth"}
		}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "port"},
		{name: "missing secret", mutate: func(c *Config) { c.Auth.Secret = "" }, wantErr: "AUTH_SECRET"},
		{name: "zero limit", mutate: func(c *Config) { c.RateLimit.MaxRequests = 0 }, wantErr: "rate limit"},
		{name: "zero window", mutate: func(c *Config) { c.RateLimit.Window = 0 }, wantErr: "window"},
		{name: "missing chain", mutate: func(c *Config) { c.Upstream.Chain = "" }, wantErr: "chain"},
		{name: "missing server url", mutate: func(c *Config) { c.Upstream.ServerURL = "" }, wantErr: "MORALIS_SERVER_URL"},
		{name: "missing app id", mutate: func(c *Config) { c.Upstream.AppID = "" }, wantErr: "MORALIS_APP_ID"},
		{name: "unknown provider", mutate: func(c *Config) { c.Upstream.Provider = "coingecko" }, wantErr: "invalid upstream provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
