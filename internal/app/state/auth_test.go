package state_test

import (
	"errors"
	"testing"

	"github.com/slatetrack/slatetrack/internal/app/state"
)

func TestLoginAndLogout(t *testing.T) {
	app := newTestApp(t)

	user, err := app.Auth.Login("  AVERY ", "avery123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != "u_admin" {
		t.Errorf("expected u_admin, got %q", user.ID)
	}
	if !app.Auth.IsAuthenticated() {
		t.Error("expected authenticated after login")
	}

	if err := app.Auth.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if app.Auth.Current() != nil {
		t.Error("expected no current user after logout")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)

	if _, err := app.Auth.Login("avery", "wrong"); !errors.Is(err, state.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := app.Auth.Login("nobody", "avery123"); !errors.Is(err, state.ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
	if app.Auth.IsAuthenticated() {
		t.Error("expected no session after failed login")
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	db := newTestDB(t)
	app := state.New(db, nil)
	app.Users.EnsureSeeded(true)
	if _, err := app.Auth.Login("sam", "sam123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	reopened := state.New(db, nil)
	current := reopened.Auth.Current()
	if current == nil || current.ID != "u_member" {
		t.Errorf("expected restored session for u_member, got %v", current)
	}
}

func TestSessionClearedWhenUserDeleted(t *testing.T) {
	db := newTestDB(t)
	app := state.New(db, nil)
	app.Users.EnsureSeeded(true)
	if _, err := app.Auth.Login("sam", "sam123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := app.Users.Remove(superAdmin(t, app), "u_member"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	reopened := state.New(db, nil)
	if reopened.Auth.Current() != nil {
		t.Error("expected no session for deleted user")
	}
}

func TestSyncPicksUpCatalogEdits(t *testing.T) {
	app := newTestApp(t)
	if _, err := app.Auth.Login("sam", "sam123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	first := "Samuel"
	if _, err := app.Users.Update(superAdmin(t, app), "u_member", state.UserUpdate{FirstName: &first}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	synced := app.Auth.Sync()
	if synced == nil || synced.FirstName != "Samuel" {
		t.Errorf("expected synced first name Samuel, got %v", synced)
	}
}

func TestSyncEndsSessionForDeletedUser(t *testing.T) {
	app := newTestApp(t)
	if _, err := app.Auth.Login("sam", "sam123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := app.Users.Remove(superAdmin(t, app), "u_member"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if app.Auth.Sync() != nil {
		t.Error("expected Sync to return nil for deleted user")
	}
	if app.Auth.IsAuthenticated() {
		t.Error("expected session ended")
	}
}
