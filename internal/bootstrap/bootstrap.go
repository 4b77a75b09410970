package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GregMSThompson/cost-tracker/internal/config"
	"github.com/GregMSThompson/cost-tracker/internal/store"
	"github.com/GregMSThompson/cost-tracker/pkg/logger"
)

type Bootstrap struct {
	Log *slog.Logger
	DB  *pgxpool.Pool
}

// Run builds the logger, validates cfg, applies pending migrations when
// enabled and connects to the database. The returned Bootstrap always
// carries a usable logger.
func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.HandlerFor(cfg.LogFormat))
	if err = cfg.Validate(); err != nil {
		return bs, err
	}

	if cfg.MigrateOnStart {
		if err = store.RunMigrations(cfg.DatabaseURL); err != nil {
			return bs, fmt.Errorf("migrate: %w", err)
		}
		bs.Log.Info("database migrations applied")
	}

	bs.DB, err = InitPostgres(applicationCtx, cfg.DatabaseURL)
	if err != nil {
		return bs, fmt.Errorf("connect database: %w", err)
	}

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.DB != nil {
		bs.DB.Close()
	}
}
