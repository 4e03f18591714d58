// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/feedboard/feedboard/internal/store"
)

// Config holds all application configuration.
type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"5000"`

	// Storage
	StoreDriver   string `env:"STORE_DRIVER" envDefault:"file"`
	DataFile      string `env:"DATA_FILE" envDefault:"feedback.json"`
	RedisURL      string `env:"REDIS_URL"`
	RedisKey      string `env:"REDIS_KEY" envDefault:"feedboard:feedback"`
	DatabaseURL   string `env:"DATABASE_URL"`
	PostgresTable string `env:"POSTGRES_TABLE" envDefault:"feedback_documents"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Comma-separated; "*" allows any origin.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
	MetricsEnabled     bool  `env:"METRICS_ENABLED" envDefault:"true"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	var result []string
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// StoreOptions returns the settings used to open the feedback store.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Driver:        c.StoreDriver,
		DataFile:      c.DataFile,
		RedisURL:      c.RedisURL,
		RedisKey:      c.RedisKey,
		DatabaseURL:   c.DatabaseURL,
		PostgresTable: c.PostgresTable,
	}
}

// Validate checks settings that depend on each other.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case store.DriverFile:
		if strings.TrimSpace(c.DataFile) == "" {
			errs = append(errs, errors.New("DATA_FILE must not be empty for the file store"))
		}
	case store.DriverRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis store"))
		}
	case store.DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q is not one of file, redis, postgres", c.StoreDriver))
	}

	if c.AppPort <= 0 || c.AppPort > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT %d is out of range", c.AppPort))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q is not one of json, text", c.LogFormat))
	}

	return errors.Join(errs...)
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
