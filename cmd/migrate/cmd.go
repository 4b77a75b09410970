package main

import (
	"log/slog"
	"os"

	"github.com/GregMSThompson/cost-tracker/internal/config"
	"github.com/GregMSThompson/cost-tracker/internal/store"
	"github.com/GregMSThompson/cost-tracker/pkg/logger"
)

// Applies pending schema migrations and exits. Useful when MIGRATEONSTART
// is disabled for the API.
func main() {
	cfg := config.New()
	log := logger.New(cfg.LogLevel, logger.HandlerFor(cfg.LogFormat))

	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	if err := store.RunMigrations(cfg.DatabaseURL); err != nil {
		exit(log, err)
	}
	log.Info("database migrations applied")
}

func exit(log *slog.Logger, err error) {
	log.Error("migration failed", "error", err)
	os.Exit(1)
}
