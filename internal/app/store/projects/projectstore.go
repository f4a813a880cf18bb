// Package projectstore wraps the record repository with project
// normalization and business invariants: slugged unique ids, required
// names, field-by-field toggle merges, and atomic id renames.
package projectstore

import (
	"errors"
	"time"

	"github.com/slatetrack/slatetrack/internal/app/storage"
	"github.com/slatetrack/slatetrack/internal/app/store/records"
	"github.com/slatetrack/slatetrack/internal/app/system/normalize"
	"github.com/slatetrack/slatetrack/internal/domain/models"
)

var (
	// ErrProjectNotFound is returned when the target project id does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrDuplicateProjectID is returned when another project already owns the id.
	ErrDuplicateProjectID = errors.New("a project with this id already exists")
	// ErrProjectIDRequired is returned when the id slugs down to nothing.
	ErrProjectIDRequired = errors.New("project id is required")
	// ErrProjectNameRequired is returned when the name is empty after trimming.
	ErrProjectNameRequired = errors.New("project name is required")
)

type Store struct {
	c *records.Collection[models.Project]
}

func New(kv storage.KV) *Store {
	return &Store{c: records.NewCollection[models.Project](kv, storage.ProjectsKey)}
}

// List returns every stored project, normalized on read so legacy shapes
// come back in the canonical superset form.
func (s *Store) List() []models.Project {
	raw := s.c.List()
	out := make([]models.Project, 0, len(raw))
	for _, p := range raw {
		out = append(out, models.NormalizeProject(p))
	}
	return out
}

// Get loads one project by id.
func (s *Store) Get(id string) (models.Project, bool) {
	raw, ok := s.c.Get(id)
	if !ok {
		return models.Project{}, false
	}
	return models.NormalizeProject(raw), true
}

// Create validates and stores a new project built from payload.
func (s *Store) Create(payload models.ProjectPayload) (models.Project, error) {
	next := models.NewProject(payload)

	if next.ID == "" {
		return models.Project{}, ErrProjectIDRequired
	}
	if _, exists := s.Get(next.ID); exists {
		return models.Project{}, ErrDuplicateProjectID
	}
	if next.Name == "" {
		return models.Project{}, ErrProjectNameRequired
	}

	return s.c.Create(next)
}

// Patch updates a subset of project fields. Nil fields leave the stored
// value in place.
type Patch struct {
	ID          *string                `json:"id,omitempty"`
	Name        *string                `json:"name,omitempty"`
	Description *string                `json:"description,omitempty"`
	CoverPhoto  *string                `json:"coverPhoto,omitempty"`
	Visibility  *models.Visibility     `json:"visibility,omitempty"`
	Toggles     *models.TogglesPatch   `json:"toggles,omitempty"`
	Members     []models.ProjectMember `json:"members,omitempty"`
	Invited     []string               `json:"invited,omitempty"`

	// HasMembers / HasInvited distinguish "replace with empty" from
	// "leave alone", since an empty list is a meaningful value here.
	HasMembers bool `json:"-"`
	HasInvited bool `json:"-"`
}

// Update applies patch to the project with the given id.
//
// A patched id is re-slugged; when it differs from the current id this is
// an identity change, rejected if another project owns the new id and
// otherwise applied as a single atomic collection rewrite. A visibility
// patch is honored only when it is exactly PUBLIC or PRIVATE; anything
// else silently keeps the existing visibility. Toggles merge
// field-by-field onto the existing set.
func (s *Store) Update(id string, patch Patch) (models.Project, error) {
	current, ok := s.Get(id)
	if !ok {
		return models.Project{}, ErrProjectNotFound
	}

	nextID := current.ID
	if patch.ID != nil {
		nextID = normalize.Slug(*patch.ID)
		if nextID == "" {
			return models.Project{}, ErrProjectIDRequired
		}
	}
	if nextID != id {
		if _, dup := s.Get(nextID); dup {
			return models.Project{}, ErrDuplicateProjectID
		}
	}

	next := current
	next.ID = nextID
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.CoverPhoto != nil {
		next.CoverPhoto = *patch.CoverPhoto
	}
	if patch.Visibility != nil {
		switch *patch.Visibility {
		case models.VisibilityPublic, models.VisibilityPrivate:
			next.Visibility = *patch.Visibility
		}
	}
	if patch.Toggles != nil {
		next.Toggles = patch.Toggles.Apply(current.Toggles)
	}
	if patch.HasMembers || patch.Members != nil {
		next.Members = patch.Members
	}
	if patch.HasInvited || patch.Invited != nil {
		next.Invited = patch.Invited
	}
	next.UpdatedAt = time.Now().UTC()

	next = models.NormalizeProject(next)
	if next.Name == "" {
		return models.Project{}, ErrProjectNameRequired
	}

	if nextID == id {
		updated, found, err := s.c.Replace(id, next)
		if err != nil {
			return models.Project{}, err
		}
		if !found {
			return models.Project{}, ErrProjectNotFound
		}
		return updated, nil
	}

	renamed, found, err := s.c.Rename(id, next)
	if err != nil {
		return models.Project{}, err
	}
	if !found {
		return models.Project{}, ErrProjectNotFound
	}
	return renamed, nil
}

// Delete removes the project with the given id, reporting whether one
// existed.
func (s *Store) Delete(id string) (bool, error) {
	return s.c.Remove(id)
}
