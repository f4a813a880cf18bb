// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the data store
// is opened and seeded, but before the HTTP handler is built. It warms
// the project cache so the first request does not pay the load cost.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	projects := deps.App.Projects.Load()
	logger.Info("startup complete",
		zap.Int("users", len(deps.App.Users.List())),
		zap.Int("projects", len(projects)))
	return nil
}
