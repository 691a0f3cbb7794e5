package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/utafrali/storefront/internal/locale"
	"github.com/utafrali/storefront/internal/storage"
)

// Config holds all configuration for the storefront process.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort           int           `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	HTTPRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	CORSMaxAge         int           `env:"CORS_MAX_AGE" envDefault:"3600"`

	// Local storage
	StorageBackend        string `env:"STORAGE_BACKEND" envDefault:"file"`
	StorageDir            string `env:"STORAGE_DIR" envDefault:"./data/profile"`
	StorageProfile        string `env:"STORAGE_PROFILE" envDefault:"default"`
	StorageBreakerEnabled bool   `env:"STORAGE_BREAKER_ENABLED" envDefault:"true"`

	// Redis
	RedisAddr      string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass      string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	RedisKeyPrefix string        `env:"REDIS_KEY_PREFIX" envDefault:"storefront:"`
	RedisTTL       time.Duration `env:"REDIS_TTL" envDefault:"0s"`

	// PostgreSQL
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPass     string `env:"POSTGRES_PASSWORD" envDefault:"storefront_secret"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSL      string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	DBMaxConns       int32  `env:"DB_MAX_CONNS" envDefault:"5"`
	DBConnectRetries int    `env:"DB_CONNECT_ATTEMPTS" envDefault:"5"`

	// Storefront behaviour
	FilterMaxPrice  float64       `env:"FILTER_MAX_PRICE" envDefault:"5000"`
	DefaultLanguage string        `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	SearchDebounce  time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"500ms"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	switch c.StorageBackend {
	case storage.BackendMemory, storage.BackendRedis:
	case storage.BackendFile:
		if c.StorageDir == "" {
			return fmt.Errorf("STORAGE_DIR is required for the file backend")
		}
	case storage.BackendPostgres:
		if c.PostgresHost == "" {
			return fmt.Errorf("POSTGRES_HOST is required")
		}
		if c.PostgresUser == "" {
			return fmt.Errorf("POSTGRES_USER is required")
		}
		if c.StorageProfile == "" {
			return fmt.Errorf("STORAGE_PROFILE is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.DBConnectRetries < 1 {
		return fmt.Errorf("DB_CONNECT_ATTEMPTS must be at least 1, got %d", c.DBConnectRetries)
	}
	if c.FilterMaxPrice <= 0 {
		return fmt.Errorf("FILTER_MAX_PRICE must be positive, got %v", c.FilterMaxPrice)
	}
	if _, ok := locale.Match(c.DefaultLanguage); !ok {
		return fmt.Errorf("unsupported DEFAULT_LANGUAGE %q", c.DefaultLanguage)
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE must not be negative, got %s", c.SearchDebounce)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	return nil
}
