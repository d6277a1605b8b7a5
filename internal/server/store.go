package server

import (
	"context"
	"log/slog"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/config"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/store"
)

// buildStore opens Postgres when a database URL is configured and falls back
// to the in-memory store otherwise, which keeps local runs and fixture demos
// working without infrastructure.
func buildStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (store.Store, error) {
	if cfg.Database.URL == "" {
		logging.Info(logger, "no database configured, using in-memory store")
		return store.NewMemoryStore(), nil
	}
	return store.OpenPostgres(ctx, cfg.Database.URL, logger)
}
