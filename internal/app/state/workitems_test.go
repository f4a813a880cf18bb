package state_test

import (
	"errors"
	"testing"

	"github.com/slatetrack/slatetrack/internal/app/state"
	workitemstore "github.com/slatetrack/slatetrack/internal/app/store/workitems"
	"github.com/slatetrack/slatetrack/internal/domain/models"
)

func createWorkItem(t *testing.T, app *state.App, actor *models.User, projectID, title string) models.WorkItem {
	t.Helper()
	item, err := app.WorkItems.Create(actor, projectID, models.WorkItemPayload{Title: title, State: models.StateTodo})
	if err != nil {
		t.Fatalf("work item create failed: %v", err)
	}
	return item
}

func TestWorkItemCreatePermission(t *testing.T) {
	app := newTestApp(t)

	payload := models.WorkItemPayload{Title: "T"}
	if _, err := app.WorkItems.Create(nil, "plan", payload); !errors.Is(err, state.ErrNoActor) {
		t.Errorf("nil actor: expected ErrNoActor, got %v", err)
	}
	if _, err := app.WorkItems.Create(member(t, app), "plan", payload); !errors.Is(err, state.ErrCannotCreateTickets) {
		t.Errorf("member: expected ErrCannotCreateTickets, got %v", err)
	}
	if _, err := app.WorkItems.Create(admin(t, app), "plan", payload); err != nil {
		t.Errorf("admin: expected success, got %v", err)
	}
}

func TestWorkItemCreateStampsActor(t *testing.T) {
	app := newTestApp(t)
	actor := admin(t, app)

	item := createWorkItem(t, app, actor, "plan", "Ticket")
	if item.CreatedBy != actor.ID {
		t.Errorf("expected creator %q, got %q", actor.ID, item.CreatedBy)
	}
}

func TestWorkItemUpdatePermissionAndAttribution(t *testing.T) {
	app := newTestApp(t)
	actor := admin(t, app)
	item := createWorkItem(t, app, actor, "plan", "Ticket")

	title := "Renamed"
	if _, err := app.WorkItems.Update(member(t, app), item.ID, workitemstore.Patch{Title: &title}); !errors.Is(err, state.ErrCannotEditTickets) {
		t.Errorf("member: expected ErrCannotEditTickets, got %v", err)
	}

	super := superAdmin(t, app)
	updated, err := app.WorkItems.Update(super, item.ID, workitemstore.Patch{Title: &title})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(updated.Activities) != 1 || updated.Activities[0].CreatedBy != super.ID {
		t.Errorf("expected field change attributed to %q, got %v", super.ID, updated.Activities)
	}
}

func TestWorkItemCommentRequiresContent(t *testing.T) {
	app := newTestApp(t)
	actor := admin(t, app)
	item := createWorkItem(t, app, actor, "plan", "Ticket")

	if _, err := app.WorkItems.AddComment(member(t, app), item.ID, "   "); !errors.Is(err, state.ErrEmptyComment) {
		t.Errorf("blank: expected ErrEmptyComment, got %v", err)
	}
	// Markup that sanitizes to nothing is blank too.
	if _, err := app.WorkItems.AddComment(member(t, app), item.ID, "<script>x()</script>"); !errors.Is(err, state.ErrEmptyComment) {
		t.Errorf("script only: expected ErrEmptyComment, got %v", err)
	}

	updated, err := app.WorkItems.AddComment(member(t, app), item.ID, "<p>looks good</p>")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if len(updated.Activities) != 1 || updated.Activities[0].Type != models.ActivityComment {
		t.Errorf("expected one comment activity, got %v", updated.Activities)
	}
}

func TestWorkItemMoveStatusOpenToMembers(t *testing.T) {
	app := newTestApp(t)
	item := createWorkItem(t, app, admin(t, app), "plan", "Ticket")

	moved, err := app.WorkItems.MoveStatus(member(t, app), item.ID, models.StateInProgress)
	if err != nil {
		t.Fatalf("MoveStatus failed: %v", err)
	}
	if moved.State != models.StateInProgress {
		t.Errorf("expected In Progress, got %q", moved.State)
	}

	if _, err := app.WorkItems.MoveStatus(nil, item.ID, models.StateDone); !errors.Is(err, state.ErrNoActor) {
		t.Errorf("nil actor: expected ErrNoActor, got %v", err)
	}
	if _, err := app.WorkItems.MoveStatus(member(t, app), item.ID, "Shipped"); !errors.Is(err, workitemstore.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestLoadByProjectReplacesPartition(t *testing.T) {
	app := newTestApp(t)
	actor := admin(t, app)

	a := createWorkItem(t, app, actor, "alpha", "A1")
	createWorkItem(t, app, actor, "beta", "B1")

	loaded := app.WorkItems.LoadByProject("alpha")
	if len(loaded) != 1 || loaded[0].ID != a.ID {
		t.Errorf("expected alpha partition, got %v", loaded)
	}
	if got := app.WorkItems.CachedByProject("beta"); len(got) != 1 {
		t.Errorf("expected beta partition untouched, got %v", got)
	}
}

func TestWorkItemGetFallsBackToStore(t *testing.T) {
	app := newTestApp(t)
	item := createWorkItem(t, app, admin(t, app), "plan", "Ticket")

	// A fresh state over the same storage has an empty cache.
	reopened := state.New(app.KV, nil)
	got, ok := reopened.WorkItems.Get(item.ID)
	if !ok || got.Title != "Ticket" {
		t.Errorf("expected store fallback to find item, got %v ok=%v", got, ok)
	}
}
