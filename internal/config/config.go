package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the session proxy service.
type Config struct {
	// Service settings
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"jojo-session-proxy"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"3000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// OpenTelemetry
	EnableTracing bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint  string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	TraceSampling float64 `env:"OTEL_TRACE_SAMPLE_RATIO" envDefault:"1"`

	// OpenAI upstream. The API key may be empty at startup; requests then fail with 500.
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	RealtimeModel   string        `env:"REALTIME_MODEL" envDefault:"gpt-4o-realtime-preview-2024-12-17"`
	RealtimeVoice   string        `env:"REALTIME_VOICE" envDefault:"alloy"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`

	// AllowClientKeys lets a client-supplied x-chat-ollama-keys header provide the
	// OpenAI key when OPENAI_API_KEY is unset.
	AllowClientKeys bool `env:"ALLOW_CLIENT_KEYS" envDefault:"false"`

	// Bearer JWT auth on /api/audio. Disabled by default.
	AuthEnabled  bool          `env:"AUTH_ENABLED" envDefault:"false"`
	AuthJWKSURL  string        `env:"AUTH_JWKS_URL"`
	AuthIssuer   string        `env:"AUTH_ISSUER"`
	AuthAudience string        `env:"AUTH_AUDIENCE"`
	AuthRefresh  time.Duration `env:"AUTH_JWKS_REFRESH" envDefault:"5m"`

	// Session ledger
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"15s"`
	SessionFallbackTTL     time.Duration `env:"SESSION_FALLBACK_TTL" envDefault:"1m"` // used when upstream omits expires_at
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.HTTPPort)
	}
	if strings.TrimSpace(c.OpenAIBaseURL) == "" {
		return fmt.Errorf("OPENAI_BASE_URL is required")
	}
	if strings.TrimSpace(c.RealtimeModel) == "" {
		return fmt.Errorf("REALTIME_MODEL is required")
	}
	if c.AuthEnabled && (strings.TrimSpace(c.AuthJWKSURL) == "" || strings.TrimSpace(c.AuthIssuer) == "") {
		return fmt.Errorf("AUTH_JWKS_URL and AUTH_ISSUER are required when AUTH_ENABLED is true")
	}
	if c.TraceSampling < 0 || c.TraceSampling > 1 {
		return fmt.Errorf("OTEL_TRACE_SAMPLE_RATIO must be between 0 and 1, got %g", c.TraceSampling)
	}
	if c.SessionCleanupInterval <= 0 {
		return fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive")
	}
	return nil
}

// Addr returns the HTTP server address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
