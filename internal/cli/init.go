// Package cli consolidates the initialization shared by trackr commands:
// logging, .env loading, configuration and the local store.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	applog "trackr/internal/log"

	"trackr/internal/config"
	"trackr/internal/storage"
)

// LoadEnvFile loads the .env file for local development. Errors are ignored
// silently as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the configured level and
// installs it as the default logger. Unknown levels fall back to info so
// bootstrap logging works; ValidateConfig still reports them as errors.
func SetupLogger(levelStr string) *applog.Logger {
	level, err := applog.ParseLevel(levelStr)
	if err != nil {
		level = slog.LevelInfo
	}
	logger := applog.New(level, "trackr")
	applog.SetDefault(logger)
	return logger
}

// ValidateConfig validates the loaded configuration. Exits the process on
// validation failure.
func ValidateConfig(logger *applog.Logger, cfg *config.Config) {
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
}

// InitStore opens the local store. Exits the process on failure.
func InitStore(logger *applog.Logger, dbPath string) *storage.Store {
	store, err := storage.NewStore(dbPath)
	if err != nil {
		logger.Error("Failed to initialize local store", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return store
}
