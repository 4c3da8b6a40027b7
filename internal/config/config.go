package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the client SDK configuration, loaded from environment
// variables. Every field has a default that works against a local server.
type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL" envDefault:"http://localhost:4000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	StoreDir       string        `env:"CREDENTIAL_STORE_DIR" envDefault:"./data/credentials"`
	StoreSecret    string        `env:"CREDENTIAL_STORE_SECRET" envDefault:"taskboard-dev-secret"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`

	// Read retry policy. Mutations are never retried automatically.
	FetchRetries int           `env:"FETCH_RETRIES" envDefault:"2"`
	FetchBackoff time.Duration `env:"FETCH_BACKOFF" envDefault:"1s"`

	// A fresh cache entry older than FreshFor is treated as stale on read.
	FreshFor time.Duration `env:"CACHE_FRESH_FOR" envDefault:"5m"`

	// Lifetime of a persisted login credential.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"8760h"`
}

// New loads configuration from TASKBOARD_-prefixed environment variables.
func New() (*Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "TASKBOARD_"}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
