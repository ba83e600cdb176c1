package gateway

import (
	"os"
	"time"
)

const defaultBaseURL = "https://api.persona-app.example/api"

// Config holds gateway client configuration.
type Config struct {
	// BaseURL is the service root, without a trailing slash.
	BaseURL string

	// Timeout is the maximum duration for a single request. Default: 30s.
	Timeout time.Duration

	Retry RetryConfig
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: defaultBaseURL,
		Timeout: 30 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults. PERSONA_API_URL overrides the base URL.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if u := os.Getenv("PERSONA_API_URL"); u != "" {
		cfg.BaseURL = u
	}
	return cfg
}
