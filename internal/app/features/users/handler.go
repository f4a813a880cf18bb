// internal/app/features/users/handler.go
package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	loginfeature "github.com/slatetrack/slatetrack/internal/app/features/login"
	"github.com/slatetrack/slatetrack/internal/app/features/shared/respond"
	"github.com/slatetrack/slatetrack/internal/app/state"
	"github.com/slatetrack/slatetrack/internal/app/system/auth"
)

// Handler serves the user management endpoints.
type Handler struct {
	App *state.App
	Log *zap.Logger
}

func NewHandler(app *state.App, logger *zap.Logger) *Handler {
	return &Handler{App: app, Log: logger}
}

// ServeList handles GET /users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	users := h.App.Users.List()
	out := make([]any, 0, len(users))
	for _, u := range users {
		out = append(out, loginfeature.ViewOf(u))
	}
	respond.JSON(w, http.StatusOK, out)
}

// HandleCreate handles POST /users.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)

	var req state.UserCreate
	if !respond.Decode(w, r, &req) {
		return
	}

	created, err := h.App.Users.Create(actor, req)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, loginfeature.ViewOf(created))
}

// HandleUpdate handles PUT /users/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id := chi.URLParam(r, "id")

	var req state.UserUpdate
	if !respond.Decode(w, r, &req) {
		return
	}

	updated, err := h.App.Users.Update(actor, id, req)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	h.App.Auth.Sync()
	respond.JSON(w, http.StatusOK, loginfeature.ViewOf(updated))
}

// HandleDelete handles DELETE /users/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id := chi.URLParam(r, "id")

	if err := h.App.Users.Remove(actor, id); err != nil {
		respond.DomainError(w, err)
		return
	}
	h.App.Auth.Sync()
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
