// Package state holds the in-memory application state: the authenticated
// user, the user catalog, loaded projects, and loaded work items. Every
// mutating operation follows the same pipeline: permission check, domain
// service call, cache merge, return. The cache is only touched after the
// service call succeeds, so a failed operation never leaves partial state.
//
// State is an injected container, not a process-wide global; tests build
// isolated instances over throwaway stores.
package state

import (
	"go.uber.org/zap"

	"github.com/slatetrack/slatetrack/internal/app/storage"
	projectstore "github.com/slatetrack/slatetrack/internal/app/store/projects"
	workitemstore "github.com/slatetrack/slatetrack/internal/app/store/workitems"
)

// App bundles every state store over one key-value store.
type App struct {
	KV        storage.KV
	Users     *UsersState
	Auth      *AuthState
	Projects  *ProjectsState
	WorkItems *WorkItemsState
	Prefs     *PrefsState
}

// New builds an App over kv. Pass a nil logger to silence logging.
func New(kv storage.KV, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	users := newUsersState(kv, logger)
	return &App{
		KV:        kv,
		Users:     users,
		Auth:      newAuthState(kv, users, logger),
		Projects:  newProjectsState(projectstore.New(kv), logger),
		WorkItems: newWorkItemsState(workitemstore.New(kv), logger),
		Prefs:     newPrefsState(kv),
	}
}
