// internal/domain/models/workitem.go
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// State is a work item's position in the workflow.
type State string

const (
	StateBacklog    State = "Backlog"
	StateTodo       State = "Todo"
	StateInProgress State = "In Progress"
	StateInReview   State = "In Review"
	StateDone       State = "Done"
)

// WorkItemStates is the fixed workflow order.
var WorkItemStates = []State{StateBacklog, StateTodo, StateInProgress, StateInReview, StateDone}

// IsValidState checks whether value names a workflow state.
func IsValidState(value State) bool {
	for _, s := range WorkItemStates {
		if s == value {
			return true
		}
	}
	return false
}

// Priority is a work item's urgency.
type Priority string

const (
	PriorityNone   Priority = "NONE"
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Priorities lists every priority from least to most urgent.
var Priorities = []Priority{PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// IsValidPriority checks whether value names a known priority.
func IsValidPriority(value Priority) bool {
	for _, p := range Priorities {
		if p == value {
			return true
		}
	}
	return false
}

// NormalizePriority returns value if valid, PriorityNone otherwise.
func NormalizePriority(value Priority) Priority {
	if IsValidPriority(value) {
		return value
	}
	return PriorityNone
}

// Attachment is a file embedded inline on a work item as a data URL.
type Attachment struct {
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	DataURL   string    `json:"dataUrl"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// WorkItem is a ticket scoped to one project. ProjectID never changes
// after creation; activities are append-only.
type WorkItem struct {
	ID              string       `json:"id"`
	ProjectID       string       `json:"projectId"`
	Title           string       `json:"title"`
	DescriptionHTML string       `json:"descriptionHtml"`
	State           State        `json:"state"`
	Priority        Priority     `json:"priority"`
	Labels          []string     `json:"labels"`
	AssigneeID      string       `json:"assigneeId"`
	StartDate       string       `json:"startDate"`
	DueDate         string       `json:"dueDate"`
	Estimate        *float64     `json:"estimate"`
	ModuleID        string       `json:"moduleId"`
	Attachments     []Attachment `json:"attachments"`
	SubItemIDs      []string     `json:"subItemIds"`
	Activities      []Activity   `json:"activities"`
	CreatedBy       string       `json:"createdBy"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// RecordID implements records.Record.
func (w WorkItem) RecordID() string { return w.ID }

// NewWorkItemID returns a project-namespaced work item id.
func NewWorkItemID(projectID string) string {
	return projectID + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// NormalizeWorkItem coerces a work item record to the canonical shape.
// It accepts legacy records with missing attachments or description HTML,
// drops malformed attachment entries, coerces the priority, and
// normalizes imported activities. Normalizing an already canonical record
// is a no-op.
func NormalizeWorkItem(w WorkItem) WorkItem {
	state := w.State
	if state == "" {
		state = StateBacklog
	}

	labels := make([]string, 0, len(w.Labels))
	for _, l := range w.Labels {
		if strings.TrimSpace(l) == "" {
			continue
		}
		labels = append(labels, l)
	}

	attachments := make([]Attachment, 0, len(w.Attachments))
	for _, a := range w.Attachments {
		if a.Name == "" || a.DataURL == "" {
			continue
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = w.CreatedAt
		}
		attachments = append(attachments, a)
	}

	activities := make([]Activity, 0, len(w.Activities))
	for _, a := range w.Activities {
		activities = append(activities, NormalizeActivity(a))
	}

	estimate := w.Estimate
	if estimate != nil && *estimate < 0 {
		estimate = nil
	}

	subItems := w.SubItemIDs
	if subItems == nil {
		subItems = []string{}
	}

	return WorkItem{
		ID:              w.ID,
		ProjectID:       w.ProjectID,
		Title:           strings.TrimSpace(w.Title),
		DescriptionHTML: w.DescriptionHTML,
		State:           state,
		Priority:        NormalizePriority(w.Priority),
		Labels:          labels,
		AssigneeID:      w.AssigneeID,
		StartDate:       w.StartDate,
		DueDate:         w.DueDate,
		Estimate:        estimate,
		ModuleID:        w.ModuleID,
		Attachments:     attachments,
		SubItemIDs:      subItems,
		Activities:      activities,
		CreatedBy:       w.CreatedBy,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

// WorkItemPayload is the input for creating a work item.
type WorkItemPayload struct {
	Title           string       `json:"title"`
	DescriptionHTML string       `json:"descriptionHtml"`
	State           State        `json:"state"`
	Priority        Priority     `json:"priority"`
	Labels          []string     `json:"labels"`
	AssigneeID      string       `json:"assigneeId"`
	StartDate       string       `json:"startDate"`
	DueDate         string       `json:"dueDate"`
	Estimate        *float64     `json:"estimate"`
	ModuleID        string       `json:"moduleId"`
	Attachments     []Attachment `json:"attachments"`
	CreatedBy       string       `json:"createdBy"`
}

// NewWorkItem builds a normalized work item scoped to projectID.
func NewWorkItem(projectID string, payload WorkItemPayload) WorkItem {
	now := time.Now().UTC()

	return NormalizeWorkItem(WorkItem{
		ID:              NewWorkItemID(projectID),
		ProjectID:       projectID,
		Title:           payload.Title,
		DescriptionHTML: payload.DescriptionHTML,
		State:           payload.State,
		Priority:        payload.Priority,
		Labels:          payload.Labels,
		AssigneeID:      payload.AssigneeID,
		StartDate:       payload.StartDate,
		DueDate:         payload.DueDate,
		Estimate:        payload.Estimate,
		ModuleID:        payload.ModuleID,
		Attachments:     payload.Attachments,
		SubItemIDs:      []string{},
		Activities:      []Activity{},
		CreatedBy:       payload.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
}
