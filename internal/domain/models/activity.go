// internal/domain/models/activity.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType classifies an entry in a work item's activity log.
type ActivityType string

const (
	ActivityComment         ActivityType = "COMMENT"
	ActivityFieldChange     ActivityType = "FIELD_CHANGE"
	ActivityStatusChange    ActivityType = "STATUS_CHANGE"
	ActivityAttachmentAdded ActivityType = "ATTACHMENT_ADDED"
)

// IsValidActivityType checks whether value names a known activity type.
func IsValidActivityType(value ActivityType) bool {
	switch value {
	case ActivityComment, ActivityFieldChange, ActivityStatusChange, ActivityAttachmentAdded:
		return true
	}
	return false
}

// Activity is an immutable, append-only log entry on a work item.
// Storage order is append order; display order is by CreatedAt descending.
type Activity struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Message   string       `json:"message"`
	HTML      string       `json:"html"`
	CreatedAt time.Time    `json:"createdAt"`
	CreatedBy string       `json:"createdBy"`
}

// NewActivity builds an activity entry with a fresh id and timestamp.
func NewActivity(kind ActivityType, message, html, createdBy string) Activity {
	return Activity{
		ID:        "act_" + uuid.NewString(),
		Type:      kind,
		Message:   message,
		HTML:      html,
		CreatedAt: time.Now().UTC(),
		CreatedBy: createdBy,
	}
}

// NormalizeActivity fills in missing id, type, and timestamp on imported
// entries. Already-complete entries pass through unchanged, so the
// operation is a fixed point.
func NormalizeActivity(a Activity) Activity {
	if a.ID == "" {
		a.ID = "act_" + uuid.NewString()
	}
	if !IsValidActivityType(a.Type) {
		a.Type = ActivityComment
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	return a
}
