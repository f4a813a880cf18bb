// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/slatetrack/slatetrack/internal/app/state"
	"github.com/slatetrack/slatetrack/internal/app/storage"
)

// DBDeps holds storage and application-state dependencies for the app.
type DBDeps struct {
	Store *storage.DB
	App   *state.App
}
