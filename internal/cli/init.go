// Package cli provides common process initialization utilities shared by
// the server entrypoint: env loading, logging setup, config validation and
// store selection.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"novaspend/internal/config"
	"novaspend/internal/log"
	"novaspend/internal/store"
)

// SetupLogger initializes structured logging with default settings and
// installs it as the process default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore creates the configured store backend.
// Returns the store or exits the process on failure.
func OpenStore(logger *log.Logger, cfg *config.Config) store.Store {
	st, err := store.Open(cfg.StoreBackend, cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize store",
			log.FieldError, err,
			"backend", cfg.StoreBackend)
		os.Exit(1)
	}
	return st
}
