// internal/app/features/workitems/handler.go
package workitems

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/slatetrack/slatetrack/internal/app/features/shared/respond"
	"github.com/slatetrack/slatetrack/internal/app/state"
	projectstore "github.com/slatetrack/slatetrack/internal/app/store/projects"
	workitemstore "github.com/slatetrack/slatetrack/internal/app/store/workitems"
	"github.com/slatetrack/slatetrack/internal/app/system/auth"
	"github.com/slatetrack/slatetrack/internal/app/system/limits"
	"github.com/slatetrack/slatetrack/internal/domain/models"
)

// Handler serves the work item endpoints.
type Handler struct {
	App *state.App
	Log *zap.Logger
}

func NewHandler(app *state.App, logger *zap.Logger) *Handler {
	return &Handler{App: app, Log: logger}
}

// ServeListByProject handles GET /projects/{id}/work-items.
func (h *Handler) ServeListByProject(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	projectID := chi.URLParam(r, "id")

	if _, ok := h.App.Projects.GetForUser(projectID, actor); !ok {
		respond.DomainError(w, projectstore.ErrProjectNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, h.App.WorkItems.LoadByProject(projectID))
}

// HandleCreate handles POST /projects/{id}/work-items.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	projectID := chi.URLParam(r, "id")

	if _, ok := h.App.Projects.GetForUser(projectID, actor); !ok {
		respond.DomainError(w, projectstore.ErrProjectNotFound)
		return
	}

	var payload models.WorkItemPayload
	if !respond.DecodeMax(w, r, &payload, limits.MaxWorkItemBody) {
		return
	}

	created, err := h.App.WorkItems.Create(actor, projectID, payload)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

// ServeGet handles GET /work-items/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, ok := h.App.WorkItems.Get(id)
	if !ok {
		respond.DomainError(w, workitemstore.ErrWorkItemNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

// patchRequest mirrors workitemstore.Patch at the wire level. List
// fields sit behind pointers so an explicit empty list clears the stored
// one, and estimate uses a raw message so "estimate": null reads as
// "clear the estimate" rather than "leave it alone".
type patchRequest struct {
	Title           *string              `json:"title"`
	DescriptionHTML *string              `json:"descriptionHtml"`
	State           *models.State        `json:"state"`
	Priority        *models.Priority     `json:"priority"`
	Labels          *[]string            `json:"labels"`
	AssigneeID      *string              `json:"assigneeId"`
	StartDate       *string              `json:"startDate"`
	DueDate         *string              `json:"dueDate"`
	Estimate        json.RawMessage      `json:"estimate"`
	ModuleID        *string              `json:"moduleId"`
	Attachments     *[]models.Attachment `json:"attachments"`
	SubItemIDs      *[]string            `json:"subItemIds"`
	Activities      []models.Activity    `json:"activities"`
}

func (p patchRequest) toPatch() (workitemstore.Patch, error) {
	patch := workitemstore.Patch{
		Title:           p.Title,
		DescriptionHTML: p.DescriptionHTML,
		State:           p.State,
		Priority:        p.Priority,
		AssigneeID:      p.AssigneeID,
		StartDate:       p.StartDate,
		DueDate:         p.DueDate,
		ModuleID:        p.ModuleID,
		Activities:      p.Activities,
	}
	if p.Labels != nil {
		patch.Labels = *p.Labels
	}
	if p.Attachments != nil {
		patch.Attachments = *p.Attachments
	}
	if p.SubItemIDs != nil {
		patch.SubItemIDs = *p.SubItemIDs
	}
	if len(p.Estimate) > 0 {
		var est *float64
		if err := json.Unmarshal(p.Estimate, &est); err != nil {
			return workitemstore.Patch{}, err
		}
		patch.Estimate = &est
	}
	return patch, nil
}

// HandleUpdate handles PUT /work-items/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id := chi.URLParam(r, "id")

	var req patchRequest
	if !respond.DecodeMax(w, r, &req, limits.MaxWorkItemBody) {
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid estimate value")
		return
	}

	updated, err := h.App.WorkItems.Update(actor, id, patch)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

type commentRequest struct {
	HTML string `json:"html"`
}

// HandleComment handles POST /work-items/{id}/comments.
func (h *Handler) HandleComment(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id := chi.URLParam(r, "id")

	var req commentRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	updated, err := h.App.WorkItems.AddComment(actor, id, req.HTML)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

type moveRequest struct {
	State models.State `json:"state"`
}

// HandleMove handles POST /work-items/{id}/move.
func (h *Handler) HandleMove(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	id := chi.URLParam(r, "id")

	var req moveRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	updated, err := h.App.WorkItems.MoveStatus(actor, id, req.State)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}
