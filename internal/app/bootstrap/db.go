// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/slatetrack/slatetrack/internal/app/state"
	"github.com/slatetrack/slatetrack/internal/app/storage"
)

// ConnectDB opens the sqlite-backed key-value store and builds the
// application state container over it.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	db, err := storage.Open(appCfg.DataPath)
	if err != nil {
		return DBDeps{}, fmt.Errorf("open data store: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return DBDeps{}, fmt.Errorf("ping data store: %w", err)
	}

	logger.Info("data store opened", zap.String("path", appCfg.DataPath))

	return DBDeps{
		Store: db,
		App:   state.New(db, logger),
	}, nil
}

// EnsureSchema seeds the demo user catalog on first run when enabled.
// The kv table itself is created by storage.Open.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return deps.App.Users.EnsureSeeded(appCfg.SeedDemoUsers)
}
