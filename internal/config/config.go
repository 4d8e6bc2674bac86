// Package config loads BillPe settings from the environment and .env files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverBolt     = "bolt"
)

// Config represents the application configuration
type Config struct {
	Port        string
	Environment string
	APIToken    string // Bearer token for the dashboard API; empty disables auth
	Storage     StorageConfig
	Gateway     GatewayConfig
}

// StorageConfig selects and configures the key-value backend
type StorageConfig struct {
	Driver string

	// PostgreSQL
	DBUser                 string
	DBPass                 string
	DBName                 string
	DBHost                 string
	DBPort                 string
	InstanceConnectionName string // Cloud SQL socket

	SQLitePath string
	BoltPath   string
}

// GatewayConfig holds process-wide gateway settings.
// Per-workspace settings live in the key-value store.
type GatewayConfig struct {
	Timeout            time.Duration // Zero means no timeout
	CurrencySymbol     string
	DefaultCountryCode string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; envPath overrides that location.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	timeout, err := parseDurationEnv("GATEWAY_TIMEOUT", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid GATEWAY_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		APIToken:    os.Getenv("API_TOKEN"),
		Storage: StorageConfig{
			Driver:                 getEnvOrDefault("STORAGE_DRIVER", DriverMemory),
			DBUser:                 getEnvOrDefault("DB_USER", "postgres"),
			DBPass:                 os.Getenv("DB_PASS"),
			DBName:                 getEnvOrDefault("DB_NAME", "billpe"),
			DBHost:                 getEnvOrDefault("DB_HOST", "localhost"),
			DBPort:                 getEnvOrDefault("DB_PORT", "5432"),
			InstanceConnectionName: os.Getenv("INSTANCE_CONNECTION_NAME"),
			SQLitePath:             getEnvOrDefault("SQLITE_PATH", "data/billpe.sqlite"),
			BoltPath:               getEnvOrDefault("BOLT_PATH", "data/billpe.db"),
		},
		Gateway: GatewayConfig{
			Timeout:            timeout,
			CurrencySymbol:     getEnvOrDefault("CURRENCY_SYMBOL", "₹"),
			DefaultCountryCode: getEnvOrDefault("DEFAULT_COUNTRY_CODE", "91"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected storage driver is known
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverPostgres, DriverSQLite, DriverBolt:
		return nil
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (want memory, postgres, sqlite or bolt)", c.Storage.Driver)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(value)
}
