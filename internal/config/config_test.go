package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.APIBaseURL != "http://localhost:8000/api/v1.0" {
		t.Fatalf("unexpected default API URL %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("unexpected default timeout %v", cfg.HTTPTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected default log level %q", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TRACKR_API_URL", "https://api.example.com/v1")
	t.Setenv("TRACKR_HTTP_TIMEOUT", "30s")
	t.Setenv("TRACKR_LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.APIBaseURL != "https://api.example.com/v1" {
		t.Fatalf("unexpected API URL %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.HTTPTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level %q", cfg.LogLevel)
	}
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("TRACKR_HTTP_TIMEOUT", "soon")
	if cfg := Load(); cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("bad duration should fall back, got %v", cfg.HTTPTimeout)
	}
}

func validConfig(t *testing.T) *Config {
	return &Config{
		APIBaseURL:  "http://localhost:8000/api/v1.0",
		HTTPTimeout: 15 * time.Second,
		DBPath:      filepath.Join(t.TempDir(), "trackr.db"),
		LogLevel:    "info",
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig(t).Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad scheme", func(c *Config) { c.APIBaseURL = "ftp://host/api" }, "invalid API URL scheme"},
		{"missing host", func(c *Config) { c.APIBaseURL = "http://" }, "missing host"},
		{"timeout too small", func(c *Config) { c.HTTPTimeout = 100 * time.Millisecond }, "at least 1 second"},
		{"timeout too large", func(c *Config) { c.HTTPTimeout = 10 * time.Minute }, "at most 5 minutes"},
		{"empty db path", func(c *Config) { c.DBPath = "" }, "database path cannot be empty"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "invalid log level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.APIBaseURL = "ftp://host"
	cfg.LogLevel = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "invalid API URL scheme") || !strings.Contains(msg, "invalid log level") {
		t.Fatalf("expected both problems reported, got %q", msg)
	}
}
