// internal/app/features/projects/handler.go
package projects

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/slatetrack/slatetrack/internal/app/features/shared/respond"
	"github.com/slatetrack/slatetrack/internal/app/state"
	projectstore "github.com/slatetrack/slatetrack/internal/app/store/projects"
	"github.com/slatetrack/slatetrack/internal/app/system/auth"
	"github.com/slatetrack/slatetrack/internal/domain/models"
)

// Handler serves the project endpoints.
type Handler struct {
	App *state.App
	Log *zap.Logger
}

func NewHandler(app *state.App, logger *zap.Logger) *Handler {
	return &Handler{App: app, Log: logger}
}

// ServeList handles GET /projects. Only projects visible to the caller
// are returned.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	respond.JSON(w, http.StatusOK, h.App.Projects.ListVisible(actor))
}

// HandleCreate handles POST /projects.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)

	var payload models.ProjectPayload
	if !respond.Decode(w, r, &payload) {
		return
	}

	created, err := h.App.Projects.Create(actor, payload)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

// ServeGet handles GET /projects/{id}. Projects the caller may not view
// read as missing rather than forbidden.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id := chi.URLParam(r, "id")

	project, ok := h.App.Projects.GetForUser(id, actor)
	if !ok {
		respond.DomainError(w, projectstore.ErrProjectNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, project)
}

// patchRequest mirrors projectstore.Patch but keeps the member and
// invite lists behind pointers so "replace with empty" is expressible.
type patchRequest struct {
	ID          *string                 `json:"id"`
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	CoverPhoto  *string                 `json:"coverPhoto"`
	Visibility  *models.Visibility      `json:"visibility"`
	Toggles     *models.TogglesPatch    `json:"toggles"`
	Members     *[]models.ProjectMember `json:"members"`
	Invited     *[]string               `json:"invited"`
}

func (p patchRequest) toPatch() projectstore.Patch {
	patch := projectstore.Patch{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CoverPhoto:  p.CoverPhoto,
		Visibility:  p.Visibility,
		Toggles:     p.Toggles,
	}
	if p.Members != nil {
		patch.Members = *p.Members
		patch.HasMembers = true
	}
	if p.Invited != nil {
		patch.Invited = *p.Invited
		patch.HasInvited = true
	}
	return patch
}

// HandleUpdate handles PUT /projects/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id := chi.URLParam(r, "id")

	var req patchRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	updated, err := h.App.Projects.Update(actor, id, req.toPatch())
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /projects/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id := chi.URLParam(r, "id")

	if err := h.App.Projects.Delete(actor, id); err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type memberRequest struct {
	UserID string `json:"userId"`
}

// HandleInvite handles POST /projects/{id}/invite.
func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id := chi.URLParam(r, "id")

	var req memberRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	updated, err := h.App.Projects.InviteMember(actor, id, req.UserID)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

// HandleRemoveMember handles POST /projects/{id}/remove-member.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id := chi.URLParam(r, "id")

	var req memberRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	updated, err := h.App.Projects.RemoveMember(actor, id, req.UserID)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

// HandleJoin handles POST /projects/{id}/join.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id := chi.URLParam(r, "id")

	joined, err := h.App.Projects.Join(actor, id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, joined)
}
