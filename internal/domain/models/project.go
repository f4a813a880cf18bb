// internal/domain/models/project.go
package models

import (
	"encoding/json"
	"time"

	"github.com/slatetrack/slatetrack/internal/app/system/normalize"
)

// Visibility controls who can see a project.
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

// ProjectRole is a user's role inside a single project's member list.
type ProjectRole string

const (
	ProjectRoleAdmin  ProjectRole = "ADMIN"
	ProjectRoleMember ProjectRole = "MEMBER"
)

// ProjectMember links a user to a project with a per-project role.
type ProjectMember struct {
	UserID        string      `json:"userId"`
	RoleInProject ProjectRole `json:"roleInProject"`
}

// Toggles are the six independent project feature flags.
type Toggles struct {
	Cycles       bool `json:"cycles"`
	Modules      bool `json:"modules"`
	Views        bool `json:"views"`
	Pages        bool `json:"pages"`
	Intake       bool `json:"intake"`
	TimeTracking bool `json:"timeTracking"`
}

// DefaultToggles is the flag set a new project starts from.
func DefaultToggles() Toggles {
	return Toggles{
		Cycles:  true,
		Modules: true,
		Views:   true,
	}
}

// UnmarshalJSON tolerates garbage flag values in persisted data: anything
// that is not recognizably truthy reads as false, so one bad flag cannot
// poison the whole collection.
func (t *Toggles) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		*t = Toggles{}
		return nil
	}
	*t = Toggles{
		Cycles:       truthy(raw["cycles"]),
		Modules:      truthy(raw["modules"]),
		Views:        truthy(raw["views"]),
		Pages:        truthy(raw["pages"]),
		Intake:       truthy(raw["intake"]),
		TimeTracking: truthy(raw["timeTracking"]),
	}
	return nil
}

func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case nil:
		return false
	default:
		// objects and arrays
		return true
	}
}

// TogglesPatch updates a subset of flags; nil fields leave the existing
// value in place. Patches merge field-by-field, never wholesale.
type TogglesPatch struct {
	Cycles       *bool `json:"cycles,omitempty"`
	Modules      *bool `json:"modules,omitempty"`
	Views        *bool `json:"views,omitempty"`
	Pages        *bool `json:"pages,omitempty"`
	Intake       *bool `json:"intake,omitempty"`
	TimeTracking *bool `json:"timeTracking,omitempty"`
}

// Apply returns base with the patched flags replaced.
func (p TogglesPatch) Apply(base Toggles) Toggles {
	if p.Cycles != nil {
		base.Cycles = *p.Cycles
	}
	if p.Modules != nil {
		base.Modules = *p.Modules
	}
	if p.Views != nil {
		base.Views = *p.Views
	}
	if p.Pages != nil {
		base.Pages = *p.Pages
	}
	if p.Intake != nil {
		base.Intake = *p.Intake
	}
	if p.TimeTracking != nil {
		base.TimeTracking = *p.TimeTracking
	}
	return base
}

// Project is a workspace container for work items.
//
// The id is a URL-safe slug and doubles as the project's public identity;
// renaming the id is an atomic identity change handled by the projects
// service.
type Project struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CoverPhoto  string          `json:"coverPhoto"`
	Visibility  Visibility      `json:"visibility"`
	Toggles     Toggles         `json:"toggles"`
	Members     []ProjectMember `json:"members"`
	Invited     []string        `json:"invited"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// RecordID implements records.Record.
func (p Project) RecordID() string { return p.ID }

// UnmarshalJSON migrates the legacy persisted shape on read: earlier
// generations stored pending invitations under "invitedMemberIds" and had
// no "members" list. Both shapes decode to the canonical superset.
func (p *Project) UnmarshalJSON(data []byte) error {
	type projectAlias Project
	aux := struct {
		*projectAlias
		InvitedMemberIDs []string `json:"invitedMemberIds"`
	}{projectAlias: (*projectAlias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(p.Invited) == 0 && len(aux.InvitedMemberIDs) > 0 {
		p.Invited = aux.InvitedMemberIDs
	}
	return nil
}

// NormalizeProject coerces a project record to the canonical shape:
// slugged id, trimmed name/description, valid visibility, coerced toggles,
// well-formed member entries, and disjoint creator/members/invited sets.
// Normalizing an already canonical record is a no-op.
func NormalizeProject(p Project) Project {
	visibility := VisibilityPrivate
	if p.Visibility == VisibilityPublic {
		visibility = VisibilityPublic
	}

	members := make([]ProjectMember, 0, len(p.Members))
	seenMember := map[string]bool{}
	for _, m := range p.Members {
		if m.UserID == "" || m.UserID == p.CreatedBy || seenMember[m.UserID] {
			continue
		}
		role := m.RoleInProject
		if role != ProjectRoleAdmin {
			role = ProjectRoleMember
		}
		members = append(members, ProjectMember{UserID: m.UserID, RoleInProject: role})
		seenMember[m.UserID] = true
	}

	invited := make([]string, 0, len(p.Invited))
	seenInvite := map[string]bool{}
	for _, id := range p.Invited {
		if id == "" || id == p.CreatedBy || seenMember[id] || seenInvite[id] {
			continue
		}
		invited = append(invited, id)
		seenInvite[id] = true
	}

	return Project{
		ID:          normalize.Slug(p.ID),
		Name:        normalize.Name(p.Name),
		Description: normalize.Name(p.Description),
		CoverPhoto:  p.CoverPhoto,
		Visibility:  visibility,
		Toggles:     p.Toggles,
		Members:     members,
		Invited:     invited,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProjectPayload is the input for creating a project.
type ProjectPayload struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CoverPhoto  string        `json:"coverPhoto"`
	Visibility  Visibility    `json:"visibility"`
	Toggles     *TogglesPatch `json:"toggles"`
	CreatedBy   string        `json:"createdBy"`
}

// NewProject builds a normalized project from a payload. The id slug is
// derived from the name unless the payload supplies one explicitly, and
// toggles start from the defaults with any payload overrides applied.
func NewProject(payload ProjectPayload) Project {
	now := time.Now().UTC()

	id := payload.ID
	if normalize.Slug(id) == "" {
		id = payload.Name
	}

	toggles := DefaultToggles()
	if payload.Toggles != nil {
		toggles = payload.Toggles.Apply(toggles)
	}

	return NormalizeProject(Project{
		ID:          id,
		Name:        payload.Name,
		Description: payload.Description,
		CoverPhoto:  payload.CoverPhoto,
		Visibility:  payload.Visibility,
		Toggles:     toggles,
		Members:     []ProjectMember{},
		Invited:     []string{},
		CreatedBy:   payload.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}
