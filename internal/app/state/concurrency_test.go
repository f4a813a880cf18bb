package state_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/slatetrack/slatetrack/internal/app/state"
	"github.com/slatetrack/slatetrack/internal/domain/models"
)

// The state container is shared by every request handler and the HTTP
// server runs handlers on separate goroutines. These tests hammer the
// stores from many goroutines at once; run them with the race detector.

func TestConcurrentUserCreatesAndReads(t *testing.T) {
	app := newTestApp(t)
	actor := superAdmin(t, app)

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := app.Users.Create(actor, state.UserCreate{
				FirstName: "Worker",
				LastName:  fmt.Sprintf("Nr%d", n),
				Email:     fmt.Sprintf("worker%d@example.com", n),
				Username:  fmt.Sprintf("worker%d", n),
				Password:  "secret123",
				Position:  "QA",
				Role:      models.RoleMember,
			})
			errs <- err
		}(i)
	}
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.Users.List()
			app.Users.GetByID("u_admin")
			app.Users.GetByCredentials("avery", "avery123")
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent Create failed: %v", err)
		}
	}
	if got := len(app.Users.List()); got != 3+writers {
		t.Errorf("catalog has %d users, want %d", got, 3+writers)
	}
}

func TestConcurrentProjectMutations(t *testing.T) {
	app := newTestApp(t)
	actor := admin(t, app)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := app.Projects.Create(actor, models.ProjectPayload{
				Name:       fmt.Sprintf("Plan %d", n),
				Visibility: models.VisibilityPublic,
			})
			errs <- err
		}(i)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.Projects.ListVisible(actor)
			app.Projects.GetForUser("plan-0", actor)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent project Create failed: %v", err)
		}
	}
	if got := len(app.Projects.Load()); got != workers {
		t.Errorf("cache has %d projects, want %d", got, workers)
	}
}

func TestConcurrentWorkItemTraffic(t *testing.T) {
	app := newTestApp(t)
	actor := admin(t, app)
	project, err := app.Projects.Create(actor, models.ProjectPayload{
		Name:       "Shared Board",
		Visibility: models.VisibilityPublic,
	})
	if err != nil {
		t.Fatalf("Create project failed: %v", err)
	}
	seed, err := app.WorkItems.Create(actor, project.ID, models.WorkItemPayload{Title: "Seed"})
	if err != nil {
		t.Fatalf("Create work item failed: %v", err)
	}
	commenter := member(t, app)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers*2)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := app.WorkItems.Create(actor, project.ID, models.WorkItemPayload{
				Title: fmt.Sprintf("Task %d", n),
			})
			errs <- err
		}(i)
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := app.WorkItems.AddComment(commenter, seed.ID, fmt.Sprintf("<p>note %d</p>", n))
			errs <- err
		}(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.WorkItems.LoadByProject(project.ID)
			app.WorkItems.Get(seed.ID)
			app.Prefs.ToggleTheme()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent work item op failed: %v", err)
		}
	}
	items := app.WorkItems.LoadByProject(project.ID)
	if len(items) != workers+1 {
		t.Errorf("project has %d items, want %d", len(items), workers+1)
	}
}

func TestConcurrentAuthAccess(t *testing.T) {
	app := newTestApp(t)

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if n%2 == 0 {
				app.Auth.Login("avery", "avery123")
			} else {
				app.Auth.Current()
				app.Auth.Sync()
				app.Auth.IsAuthenticated()
			}
		}(i)
	}
	wg.Wait()

	if _, err := app.Auth.Login("avery", "avery123"); err != nil {
		t.Fatalf("Login after concurrent access failed: %v", err)
	}
	current := app.Auth.Current()
	if current == nil || current.ID != "u_admin" {
		t.Errorf("current = %+v, want u_admin", current)
	}
}
