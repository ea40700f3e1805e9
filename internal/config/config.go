// Package config loads the process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/multierr"
)

// Store drivers.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config is read once at startup and treated as immutable.
type Config struct {
	// Server
	Addr string

	// Store
	Store       string
	DBPath      string
	DatabaseURL string

	// Logging
	LogLevel       string
	LogDevelopment bool

	// Metrics
	MetricsEnabled bool
}

// Load reads Config from environment variables, applying defaults for unset
// keys. Invalid values are reported together.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:        getEnvString("ADDR", ":8080"),
		Store:       getEnvString("BMI_STORE", StoreSQLite),
		DBPath:      getEnvString("BMI_DB_PATH", "data.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    getEnvString("LOG_LEVEL", "info"),
	}

	var errs error

	var err error
	if cfg.LogDevelopment, err = getEnvBool("LOG_DEVELOPMENT", false); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("LOG_DEVELOPMENT: %w", err))
	}
	if cfg.MetricsEnabled, err = getEnvBool("METRICS_ENABLED", true); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("METRICS_ENABLED: %w", err))
	}

	switch cfg.Store {
	case StoreSQLite, StoreMemory:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			errs = multierr.Append(errs, errors.New("DATABASE_URL: required when BMI_STORE=postgres"))
		}
	default:
		errs = multierr.Append(errs, fmt.Errorf("BMI_STORE: unknown store %q", cfg.Store))
	}

	if errs != nil {
		return nil, fmt.Errorf("invalid environment: %w", errs)
	}
	return cfg, nil
}

func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseBool(v)
}
