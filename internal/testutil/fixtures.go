package testutil

import (
	"path/filepath"
	"testing"

	"github.com/slatetrack/slatetrack/internal/app/state"
	"github.com/slatetrack/slatetrack/internal/app/storage"
	"github.com/slatetrack/slatetrack/internal/domain/models"
)

// SetupTestDB opens a throwaway sqlite store for one test.
func SetupTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// SetupTestApp builds a seeded state container over a throwaway store.
func SetupTestApp(t *testing.T) *state.App {
	t.Helper()
	app := state.New(SetupTestDB(t), nil)
	if err := app.Users.EnsureSeeded(true); err != nil {
		t.Fatalf("seed test users: %v", err)
	}
	return app
}

// SuperAdmin returns the seeded super admin user.
func SuperAdmin(t *testing.T, app *state.App) *models.User {
	t.Helper()
	u := app.Users.GetByID("u_admin")
	if u == nil {
		t.Fatal("seeded super admin missing")
	}
	return u
}

// Admin returns the seeded admin user.
func Admin(t *testing.T, app *state.App) *models.User {
	t.Helper()
	u := app.Users.GetByID("u_manager")
	if u == nil {
		t.Fatal("seeded admin missing")
	}
	return u
}

// Member returns the seeded member user.
func Member(t *testing.T, app *state.App) *models.User {
	t.Helper()
	u := app.Users.GetByID("u_member")
	if u == nil {
		t.Fatal("seeded member missing")
	}
	return u
}

// CreateProject stores a project owned by actor, failing the test on error.
func CreateProject(t *testing.T, app *state.App, actor *models.User, name string, visibility models.Visibility) models.Project {
	t.Helper()
	p, err := app.Projects.Create(actor, models.ProjectPayload{Name: name, Visibility: visibility})
	if err != nil {
		t.Fatalf("create test project: %v", err)
	}
	return p
}

// CreateWorkItem stores a work item created by actor, failing the test on error.
func CreateWorkItem(t *testing.T, app *state.App, actor *models.User, projectID, title string) models.WorkItem {
	t.Helper()
	item, err := app.WorkItems.Create(actor, projectID, models.WorkItemPayload{Title: title})
	if err != nil {
		t.Fatalf("create test work item: %v", err)
	}
	return item
}
