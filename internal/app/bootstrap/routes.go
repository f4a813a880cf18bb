// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	healthfeature "github.com/slatetrack/slatetrack/internal/app/features/health"
	loginfeature "github.com/slatetrack/slatetrack/internal/app/features/login"
	prefsfeature "github.com/slatetrack/slatetrack/internal/app/features/prefs"
	projectsfeature "github.com/slatetrack/slatetrack/internal/app/features/projects"
	usersfeature "github.com/slatetrack/slatetrack/internal/app/features/users"
	workitemsfeature "github.com/slatetrack/slatetrack/internal/app/features/workitems"
	"github.com/slatetrack/slatetrack/internal/app/system/auth"
	"github.com/slatetrack/slatetrack/internal/app/system/ratelimit"
	"github.com/slatetrack/slatetrack/internal/domain/models"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. SlateTrack wires the session manager,
// applies session middleware, and mounts feature routers for sessions,
// users, projects, work items, and preferences.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Resolve session user ids against the live catalog so role changes
	// and deletions take effect immediately.
	sessionMgr.SetUserFetcher(func(id string) *models.User {
		return deps.App.Users.GetByID(id)
	})

	r := chi.NewRouter()

	// Global auth middleware: loads the current user into context if
	// signed in, making it available via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Store, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Sessions, throttled per IP and per account
	loginHandler := loginfeature.NewHandler(deps.App, sessionMgr, ratelimit.NewLoginLimiter(), logger)
	loginfeature.MountRoutes(r, loginHandler)

	// User management
	usersHandler := usersfeature.NewHandler(deps.App, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	// Projects and their work item collections
	workItemsHandler := workitemsfeature.NewHandler(deps.App, logger)
	projectsHandler := projectsfeature.NewHandler(deps.App, logger)
	r.Mount("/projects", projectsfeature.Routes(projectsHandler, workItemsHandler))
	r.Mount("/work-items", workitemsfeature.Routes(workItemsHandler))

	// UI preferences
	prefsHandler := prefsfeature.NewHandler(deps.App, logger)
	r.Mount("/prefs", prefsfeature.Routes(prefsHandler))

	return r, nil
}
