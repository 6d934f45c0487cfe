package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv string

	// Logging
	LogLevel     string
	LogFormat    string
	LogFile      string
	LogAddSource bool

	// Storage
	StoreDriver string
	SeedPath    string

	// Metrics
	MetricsAddr            string
	MetricsShutdownTimeout time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv: getEnv("APP_ENV", "development"),

		LogLevel:     getEnv("LOG_LEVEL", "warn"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		LogFile:      getEnv("LOG_FILE", ""),
		LogAddSource: getBoolEnv("LOG_ADD_SOURCE", false),

		StoreDriver: getEnv("STORE_DRIVER", "memory"),
		SeedPath:    getEnv("SEED_PATH", ""),

		MetricsAddr:            getEnv("METRICS_ADDR", ""),
		MetricsShutdownTimeout: getDurationEnv("METRICS_SHUTDOWN_TIMEOUT", 2*time.Second),
	}

	return cfg, nil
}

// MetricsEnabled reports whether the /metrics endpoint should be served.
func (c *Config) MetricsEnabled() bool {
	return c.MetricsAddr != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
