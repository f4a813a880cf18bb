package state

import (
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/slatetrack/slatetrack/internal/app/policy/ticketpolicy"
	"github.com/slatetrack/slatetrack/internal/app/system/htmlsanitize"
	workitemstore "github.com/slatetrack/slatetrack/internal/app/store/workitems"
	"github.com/slatetrack/slatetrack/internal/domain/models"
)

var (
	// ErrCannotCreateTickets is returned when the actor may not create work items.
	ErrCannotCreateTickets = errors.New("only admins can create tickets")
	// ErrCannotEditTickets is returned when the actor may not edit work item fields.
	ErrCannotEditTickets = errors.New("you do not have permission to edit ticket fields")
	// ErrEmptyComment is returned when a comment has no content after sanitizing.
	ErrEmptyComment = errors.New("comment cannot be empty")
)

// WorkItemsState caches loaded work items over the work item service.
// The cache is filled one project at a time; Get falls back to the store
// for items outside the loaded partitions. Safe for concurrent use.
type WorkItemsState struct {
	svc    *workitemstore.Store
	mu     sync.Mutex
	items  []models.WorkItem
	logger *zap.Logger
}

func newWorkItemsState(svc *workitemstore.Store, logger *zap.Logger) *WorkItemsState {
	return &WorkItemsState{svc: svc, logger: logger}
}

// LoadByProject reads the project's work items from the store, replacing
// that project's partition of the cache.
func (s *WorkItemsState) LoadByProject(projectID string) []models.WorkItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := s.svc.ListByProject(projectID)

	kept := make([]models.WorkItem, 0, len(s.items))
	for _, item := range s.items {
		if item.ProjectID != projectID {
			kept = append(kept, item)
		}
	}
	s.items = append(kept, fresh...)

	out := make([]models.WorkItem, len(fresh))
	copy(out, fresh)
	return out
}

// CachedByProject returns the cached items for projectID without touching
// the store.
func (s *WorkItemsState) CachedByProject(projectID string) []models.WorkItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.WorkItem{}
	for _, item := range s.items {
		if item.ProjectID == projectID {
			out = append(out, item)
		}
	}
	return out
}

// Get returns the work item with the given id, consulting the cache
// first and the store second.
func (s *WorkItemsState) Get(id string) (models.WorkItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return s.svc.Get(id)
}

// replaceCached swaps or appends the cache entry for updated. Caller
// holds mu.
func (s *WorkItemsState) replaceCached(updated models.WorkItem) {
	for i := range s.items {
		if s.items[i].ID == updated.ID {
			s.items[i] = updated
			return
		}
	}
	s.items = append(s.items, updated)
}

// Create stores a new work item in projectID on behalf of actor.
func (s *WorkItemsState) Create(actor *models.User, projectID string, payload models.WorkItemPayload) (models.WorkItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actor == nil {
		return models.WorkItem{}, ErrNoActor
	}
	if !ticketpolicy.CanEditTicket(actor) {
		return models.WorkItem{}, ErrCannotCreateTickets
	}

	payload.CreatedBy = actor.ID
	created, err := s.svc.Create(projectID, payload)
	if err != nil {
		return models.WorkItem{}, err
	}
	s.items = append(s.items, created)
	s.logger.Info("work item created", zap.String("work_item_id", created.ID), zap.String("project_id", projectID))
	return created, nil
}

// Update applies a field patch to the work item with the given id.
func (s *WorkItemsState) Update(actor *models.User, id string, patch workitemstore.Patch) (models.WorkItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actor == nil {
		return models.WorkItem{}, ErrNoActor
	}
	if !ticketpolicy.CanEditTicket(actor) {
		return models.WorkItem{}, ErrCannotEditTickets
	}

	patch.UpdatedBy = actor.ID
	updated, err := s.svc.Update(id, patch)
	if err != nil {
		return models.WorkItem{}, err
	}
	s.replaceCached(updated)
	return updated, nil
}

// AddComment appends a comment by actor. Comments that sanitize down to
// nothing are rejected.
func (s *WorkItemsState) AddComment(actor *models.User, id, html string) (models.WorkItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actor == nil {
		return models.WorkItem{}, ErrNoActor
	}
	if !ticketpolicy.CanComment(actor) {
		return models.WorkItem{}, ErrNoActor
	}
	if strings.TrimSpace(htmlsanitize.Sanitize(html)) == "" {
		return models.WorkItem{}, ErrEmptyComment
	}

	updated, err := s.svc.AddComment(id, html, actor.ID)
	if err != nil {
		return models.WorkItem{}, err
	}
	s.replaceCached(updated)
	return updated, nil
}

// MoveStatus transitions the work item to newState on behalf of actor.
func (s *WorkItemsState) MoveStatus(actor *models.User, id string, newState models.State) (models.WorkItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actor == nil {
		return models.WorkItem{}, ErrNoActor
	}
	if !ticketpolicy.CanMoveTicket(actor) {
		return models.WorkItem{}, ErrNoActor
	}

	updated, err := s.svc.MoveStatus(id, newState, actor.ID)
	if err != nil {
		return models.WorkItem{}, err
	}
	s.replaceCached(updated)
	return updated, nil
}
