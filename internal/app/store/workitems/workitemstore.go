// Package workitemstore wraps the record repository with work item
// normalization and is the sole writer of derived activity entries:
// field-change, attachment-added, status-change, and comment activities
// all originate here.
package workitemstore

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/slatetrack/slatetrack/internal/app/storage"
	"github.com/slatetrack/slatetrack/internal/app/store/records"
	"github.com/slatetrack/slatetrack/internal/app/system/htmlsanitize"
	"github.com/slatetrack/slatetrack/internal/domain/models"
)

var (
	// ErrWorkItemNotFound is returned when the target work item does not exist.
	ErrWorkItemNotFound = errors.New("work item not found")
	// ErrDuplicateWorkItemID is returned on the improbable generated-id collision.
	ErrDuplicateWorkItemID = errors.New("a work item with this id already exists")
	// ErrTitleRequired is returned when the title is empty after trimming.
	ErrTitleRequired = errors.New("title is required")
	// ErrInvalidState is returned when a status move names an unknown state.
	ErrInvalidState = errors.New("unknown work item state")
)

type Store struct {
	c *records.Collection[models.WorkItem]
}

func New(kv storage.KV) *Store {
	return &Store{c: records.NewCollection[models.WorkItem](kv, storage.WorkItemsKey)}
}

// ListAll returns every stored work item, normalized on read.
func (s *Store) ListAll() []models.WorkItem {
	raw := s.c.List()
	out := make([]models.WorkItem, 0, len(raw))
	for _, item := range raw {
		out = append(out, models.NormalizeWorkItem(item))
	}
	return out
}

// ListByProject returns the work items belonging to projectID.
func (s *Store) ListByProject(projectID string) []models.WorkItem {
	items := s.ListAll()
	out := make([]models.WorkItem, 0, len(items))
	for _, item := range items {
		if item.ProjectID == projectID {
			out = append(out, item)
		}
	}
	return out
}

// Get loads one work item by id.
func (s *Store) Get(id string) (models.WorkItem, bool) {
	raw, ok := s.c.Get(id)
	if !ok {
		return models.WorkItem{}, false
	}
	return models.NormalizeWorkItem(raw), true
}

// Create validates and stores a new work item scoped to projectID.
// Description HTML is sanitized before persisting.
func (s *Store) Create(projectID string, payload models.WorkItemPayload) (models.WorkItem, error) {
	payload.DescriptionHTML = htmlsanitize.Sanitize(payload.DescriptionHTML)
	item := models.NewWorkItem(projectID, payload)

	if item.Title == "" {
		return models.WorkItem{}, ErrTitleRequired
	}
	if _, exists := s.Get(item.ID); exists {
		return models.WorkItem{}, ErrDuplicateWorkItemID
	}

	return s.c.Create(item)
}

// Patch updates a subset of work item fields. Nil fields leave the stored
// value in place. UpdatedBy attributes the derived activities and is
// never diffed itself; Activities entries are imported verbatim (after
// normalization) rather than diffed.
type Patch struct {
	Title           *string             `json:"title,omitempty"`
	DescriptionHTML *string             `json:"descriptionHtml,omitempty"`
	State           *models.State       `json:"state,omitempty"`
	Priority        *models.Priority    `json:"priority,omitempty"`
	Labels          []string            `json:"labels,omitempty"`
	AssigneeID      *string             `json:"assigneeId,omitempty"`
	StartDate       *string             `json:"startDate,omitempty"`
	DueDate         *string             `json:"dueDate,omitempty"`
	Estimate        **float64           `json:"-"`
	ModuleID        *string             `json:"moduleId,omitempty"`
	Attachments     []models.Attachment `json:"attachments,omitempty"`
	SubItemIDs      []string            `json:"subItemIds,omitempty"`
	Activities      []models.Activity   `json:"activities,omitempty"`
	UpdatedBy       string              `json:"updatedBy,omitempty"`
}

// Update applies patch to the work item with the given id, appending one
// FIELD_CHANGE activity per changed field (activities and attachments are
// excluded from diffing) and one ATTACHMENT_ADDED activity when the
// attachment list strictly grows.
func (s *Store) Update(id string, patch Patch) (models.WorkItem, error) {
	current, ok := s.Get(id)
	if !ok {
		return models.WorkItem{}, ErrWorkItemNotFound
	}

	attributedTo := patch.UpdatedBy
	if attributedTo == "" {
		attributedTo = current.CreatedBy
	}

	next := current
	nextActivities := append([]models.Activity{}, current.Activities...)

	for _, imported := range patch.Activities {
		nextActivities = append(nextActivities, models.NormalizeActivity(imported))
	}

	var changed []string
	if patch.Title != nil && *patch.Title != current.Title {
		next.Title = *patch.Title
		changed = append(changed, "title")
	}
	if patch.DescriptionHTML != nil {
		clean := htmlsanitize.Sanitize(*patch.DescriptionHTML)
		if clean != current.DescriptionHTML {
			next.DescriptionHTML = clean
			changed = append(changed, "descriptionHtml")
		}
	}
	if patch.State != nil && *patch.State != current.State {
		next.State = *patch.State
		changed = append(changed, "state")
	}
	if patch.Priority != nil && *patch.Priority != current.Priority {
		next.Priority = *patch.Priority
		changed = append(changed, "priority")
	}
	if patch.Labels != nil && !reflect.DeepEqual(patch.Labels, current.Labels) {
		next.Labels = patch.Labels
		changed = append(changed, "labels")
	}
	if patch.AssigneeID != nil && *patch.AssigneeID != current.AssigneeID {
		next.AssigneeID = *patch.AssigneeID
		changed = append(changed, "assigneeId")
	}
	if patch.StartDate != nil && *patch.StartDate != current.StartDate {
		next.StartDate = *patch.StartDate
		changed = append(changed, "startDate")
	}
	if patch.DueDate != nil && *patch.DueDate != current.DueDate {
		next.DueDate = *patch.DueDate
		changed = append(changed, "dueDate")
	}
	if patch.Estimate != nil && !equalEstimate(*patch.Estimate, current.Estimate) {
		next.Estimate = *patch.Estimate
		changed = append(changed, "estimate")
	}
	if patch.ModuleID != nil && *patch.ModuleID != current.ModuleID {
		next.ModuleID = *patch.ModuleID
		changed = append(changed, "moduleId")
	}
	if patch.SubItemIDs != nil && !reflect.DeepEqual(patch.SubItemIDs, current.SubItemIDs) {
		next.SubItemIDs = patch.SubItemIDs
		changed = append(changed, "subItemIds")
	}

	for _, field := range changed {
		nextActivities = append(nextActivities, models.NewActivity(
			models.ActivityFieldChange,
			fmt.Sprintf("%s updated", field),
			"",
			attributedTo,
		))
	}

	if patch.Attachments != nil {
		if len(patch.Attachments) > len(current.Attachments) {
			nextActivities = append(nextActivities, models.NewActivity(
				models.ActivityAttachmentAdded,
				"Attachment added",
				"",
				attributedTo,
			))
		}
		next.Attachments = patch.Attachments
	}

	next.Activities = nextActivities
	next.UpdatedAt = time.Now().UTC()
	next = models.NormalizeWorkItem(next)

	return s.replace(id, next)
}

// AddComment appends a COMMENT activity carrying sanitized html.
func (s *Store) AddComment(id, html, createdBy string) (models.WorkItem, error) {
	current, ok := s.Get(id)
	if !ok {
		return models.WorkItem{}, ErrWorkItemNotFound
	}

	current.Activities = append(current.Activities, models.NewActivity(
		models.ActivityComment,
		"Comment added",
		htmlsanitize.Sanitize(html),
		createdBy,
	))
	current.UpdatedAt = time.Now().UTC()

	return s.replace(id, models.NormalizeWorkItem(current))
}

// MoveStatus transitions the work item to newState and appends a
// STATUS_CHANGE activity recording the textual transition. States outside
// the fixed workflow set are rejected.
func (s *Store) MoveStatus(id string, newState models.State, createdBy string) (models.WorkItem, error) {
	if !models.IsValidState(newState) {
		return models.WorkItem{}, ErrInvalidState
	}

	current, ok := s.Get(id)
	if !ok {
		return models.WorkItem{}, ErrWorkItemNotFound
	}

	current.Activities = append(current.Activities, models.NewActivity(
		models.ActivityStatusChange,
		fmt.Sprintf("Status changed from %q to %q", current.State, newState),
		"",
		createdBy,
	))
	current.State = newState
	current.UpdatedAt = time.Now().UTC()

	return s.replace(id, models.NormalizeWorkItem(current))
}

func (s *Store) replace(id string, item models.WorkItem) (models.WorkItem, error) {
	updated, found, err := s.c.Replace(id, item)
	if err != nil {
		return models.WorkItem{}, err
	}
	if !found {
		return models.WorkItem{}, ErrWorkItemNotFound
	}
	return updated, nil
}

func equalEstimate(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
