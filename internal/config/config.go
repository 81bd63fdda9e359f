package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// Remote API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Local store
	DBPath string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		APIBaseURL:  getEnv("TRACKR_API_URL", "http://localhost:8000/api/v1.0"),
		HTTPTimeout: getEnvDuration("TRACKR_HTTP_TIMEOUT", 15*time.Second),
		DBPath:      getEnv("TRACKR_DB_PATH", "./data/trackr.db"),
		LogLevel:    getEnv("TRACKR_LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration and returns all problems in one error.
func (c *Config) Validate() error {
	var errs []string

	if parsed, err := url.Parse(c.APIBaseURL); err != nil {
		errs = append(errs, fmt.Sprintf("invalid API URL '%s': %v", c.APIBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errs = append(errs, fmt.Sprintf("invalid API URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	} else if parsed.Host == "" {
		errs = append(errs, fmt.Sprintf("invalid API URL '%s': missing host", c.APIBaseURL))
	}

	if c.HTTPTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	} else if c.HTTPTimeout > 5*time.Minute {
		errs = append(errs, fmt.Sprintf("invalid HTTP timeout %v: must be at most 5 minutes", c.HTTPTimeout))
	}

	if c.DBPath == "" {
		errs = append(errs, "database path cannot be empty")
	} else {
		dir := filepath.Dir(c.DBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
				}
			}
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
