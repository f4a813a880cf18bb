// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down the data store.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Store != nil {
		logger.Info("closing data store")
		if err := deps.Store.Close(); err != nil {
			logger.Error("data store close failed", zap.Error(err))
			return err
		}
	}
	return nil
}
