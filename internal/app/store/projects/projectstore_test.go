package projectstore_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/slatetrack/slatetrack/internal/app/storage"
	projectstore "github.com/slatetrack/slatetrack/internal/app/store/projects"
	"github.com/slatetrack/slatetrack/internal/domain/models"
)

func newStore(t *testing.T) (*projectstore.Store, *storage.DB) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return projectstore.New(db), db
}

func TestCreateDerivesSlug(t *testing.T) {
	store, _ := newStore(t)

	p, err := store.Create(models.ProjectPayload{Name: "My Plan", CreatedBy: "u1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.ID != "my-plan" {
		t.Errorf("expected id %q, got %q", "my-plan", p.ID)
	}
}

func TestCreateDuplicateIDFails(t *testing.T) {
	store, _ := newStore(t)

	if _, err := store.Create(models.ProjectPayload{Name: "My Plan", CreatedBy: "u1"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(models.ProjectPayload{Name: "My Plan", CreatedBy: "u2"})
	if !errors.Is(err, projectstore.ErrDuplicateProjectID) {
		t.Errorf("expected ErrDuplicateProjectID, got %v", err)
	}
	if len(store.List()) != 1 {
		t.Errorf("expected 1 project after failed create, got %d", len(store.List()))
	}
}

func TestCreateValidation(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.Create(models.ProjectPayload{Name: "   "})
	if !errors.Is(err, projectstore.ErrProjectIDRequired) {
		t.Errorf("expected ErrProjectIDRequired for blank name and id, got %v", err)
	}

	_, err = store.Create(models.ProjectPayload{ID: "has-id", Name: "  "})
	if !errors.Is(err, projectstore.ErrProjectNameRequired) {
		t.Errorf("expected ErrProjectNameRequired, got %v", err)
	}
}

func TestUpdateNotFound(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.Update("ghost", projectstore.Patch{})
	if !errors.Is(err, projectstore.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestUpdateRenameMovesRecordAtomically(t *testing.T) {
	store, _ := newStore(t)

	created, err := store.Create(models.ProjectPayload{Name: "My Plan", Description: "keep", CreatedBy: "u1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newID := "my-plan-2"
	updated, err := store.Update(created.ID, projectstore.Patch{ID: &newID})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ID != "my-plan-2" {
		t.Errorf("expected renamed id, got %q", updated.ID)
	}

	if _, ok := store.Get("my-plan"); ok {
		t.Error("expected nothing reachable at the old id")
	}
	got, ok := store.Get("my-plan-2")
	if !ok {
		t.Fatal("expected project at new id")
	}
	if got.Description != "keep" || got.CreatedBy != "u1" {
		t.Errorf("expected other fields unchanged, got %+v", got)
	}
	if len(store.List()) != 1 {
		t.Errorf("expected exactly one project, got %d", len(store.List()))
	}
}

func TestUpdateRenameToTakenIDFails(t *testing.T) {
	store, _ := newStore(t)

	store.Create(models.ProjectPayload{Name: "Alpha", CreatedBy: "u1"})
	store.Create(models.ProjectPayload{Name: "Beta", CreatedBy: "u1"})

	taken := "alpha"
	_, err := store.Update("beta", projectstore.Patch{ID: &taken})
	if !errors.Is(err, projectstore.ErrDuplicateProjectID) {
		t.Errorf("expected ErrDuplicateProjectID, got %v", err)
	}
}

func TestUpdateTogglesMergeNotReplace(t *testing.T) {
	store, _ := newStore(t)

	created, _ := store.Create(models.ProjectPayload{Name: "Plan", CreatedBy: "u1"})
	if !created.Toggles.Cycles || !created.Toggles.Modules || !created.Toggles.Views {
		t.Fatalf("unexpected default toggles: %+v", created.Toggles)
	}

	on := true
	updated, err := store.Update(created.ID, projectstore.Patch{
		Toggles: &models.TogglesPatch{Pages: &on},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := models.Toggles{Cycles: true, Modules: true, Views: true, Pages: true}
	if updated.Toggles != want {
		t.Errorf("expected merged toggles %+v, got %+v", want, updated.Toggles)
	}
}

func TestUpdateVisibilityGuard(t *testing.T) {
	store, _ := newStore(t)

	created, _ := store.Create(models.ProjectPayload{Name: "Plan", Visibility: models.VisibilityPublic, CreatedBy: "u1"})

	bogus := models.Visibility("SHARED")
	updated, err := store.Update(created.ID, projectstore.Patch{Visibility: &bogus})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Visibility != models.VisibilityPublic {
		t.Errorf("expected bogus visibility ignored, got %q", updated.Visibility)
	}

	private := models.VisibilityPrivate
	updated, err = store.Update(created.ID, projectstore.Patch{Visibility: &private})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Visibility != models.VisibilityPrivate {
		t.Errorf("expected visibility changed to PRIVATE, got %q", updated.Visibility)
	}
}

func TestDelete(t *testing.T) {
	store, _ := newStore(t)
	created, _ := store.Create(models.ProjectPayload{Name: "Plan", CreatedBy: "u1"})

	removed, err := store.Delete(created.ID)
	if err != nil || !removed {
		t.Fatalf("Delete failed: removed=%v err=%v", removed, err)
	}

	removed, err = store.Delete(created.ID)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if removed {
		t.Error("expected second Delete to report false")
	}
}

func TestListNormalizesLegacyShape(t *testing.T) {
	store, db := newStore(t)

	legacy := `[{
		"id": "old-plan",
		"name": "Old Plan",
		"visibility": "PRIVATE",
		"invitedMemberIds": ["u2"],
		"toggles": {"cycles": "yes", "modules": true},
		"createdBy": "u1"
	}]`
	if err := db.SetRaw(storage.ProjectsKey, legacy); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}

	projects := store.List()
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	p := projects[0]
	if len(p.Invited) != 1 || p.Invited[0] != "u2" {
		t.Errorf("expected legacy invitedMemberIds migrated, got %v", p.Invited)
	}
	if !p.Toggles.Cycles || !p.Toggles.Modules || p.Toggles.Views {
		t.Errorf("expected coerced toggles, got %+v", p.Toggles)
	}
}
