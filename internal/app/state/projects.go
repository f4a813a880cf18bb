package state

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/slatetrack/slatetrack/internal/app/policy/projectpolicy"
	projectstore "github.com/slatetrack/slatetrack/internal/app/store/projects"
	"github.com/slatetrack/slatetrack/internal/domain/models"
)

var (
	// ErrCannotCreateProjects is returned when the actor may not create projects.
	ErrCannotCreateProjects = errors.New("only admins can create projects")
	// ErrCannotEditProject is returned when the actor may not change project settings.
	ErrCannotEditProject = errors.New("only admins can edit project settings")
	// ErrCreatorIsMember is returned when inviting the project creator.
	ErrCreatorIsMember = errors.New("the project creator is already part of the project")
	// ErrAlreadyMember is returned when inviting an existing member.
	ErrAlreadyMember = errors.New("this user is already a member")
	// ErrAlreadyInvited is returned when inviting an already invited user.
	ErrAlreadyInvited = errors.New("this user is already invited")
	// ErrCannotRemoveCreator is returned when removing the project creator.
	ErrCannotRemoveCreator = errors.New("the project creator cannot be removed")
	// ErrNotPublicProject is returned when joining a project that is not public.
	ErrNotPublicProject = errors.New("only public projects can be joined directly")
)

// ProjectsState caches the loaded project list over the project service.
// The cache mirrors the store; it is only updated after the store accepts
// a mutation. Safe for concurrent use.
type ProjectsState struct {
	svc      *projectstore.Store
	mu       sync.Mutex
	projects []models.Project
	loaded   bool
	logger   *zap.Logger
}

func newProjectsState(svc *projectstore.Store, logger *zap.Logger) *ProjectsState {
	return &ProjectsState{svc: svc, logger: logger}
}

// Load reads every project from the store into the cache.
func (s *ProjectsState) Load() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	return s.snapshot()
}

// loadLocked refills the cache from the store. Caller holds mu.
func (s *ProjectsState) loadLocked() {
	s.projects = s.svc.List()
	s.loaded = true
}

// ensureLoaded fills the cache on first use. Caller holds mu.
func (s *ProjectsState) ensureLoaded() {
	if !s.loaded {
		s.loadLocked()
	}
}

// snapshot copies the cache. Caller holds mu.
func (s *ProjectsState) snapshot() []models.Project {
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// find looks up a cached project by id. Caller holds mu.
func (s *ProjectsState) find(id string) (models.Project, bool) {
	s.ensureLoaded()
	for i := range s.projects {
		if s.projects[i].ID == id {
			return s.projects[i], true
		}
	}
	return models.Project{}, false
}

// replaceCached swaps the cache entry with the given id for next. The id
// may differ from next.ID after a rename. Caller holds mu.
func (s *ProjectsState) replaceCached(id string, next models.Project) {
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i] = next
			return
		}
	}
	s.projects = append(s.projects, next)
}

// Create stores a new project owned by actor.
func (s *ProjectsState) Create(actor *models.User, payload models.ProjectPayload) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actor == nil {
		return models.Project{}, ErrNoActor
	}
	if !projectpolicy.CanAccessProjectSettings(actor) {
		return models.Project{}, ErrCannotCreateProjects
	}

	payload.CreatedBy = actor.ID
	created, err := s.svc.Create(payload)
	if err != nil {
		return models.Project{}, err
	}

	s.ensureLoaded()
	s.projects = append(s.projects, created)
	s.logger.Info("project created", zap.String("project_id", created.ID), zap.String("created_by", actor.ID))
	return created, nil
}

// Update applies a settings patch to the project with the given id.
func (s *ProjectsState) Update(actor *models.User, id string, patch projectstore.Patch) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actor == nil {
		return models.Project{}, ErrNoActor
	}
	if !projectpolicy.CanAccessProjectSettings(actor) {
		return models.Project{}, ErrCannotEditProject
	}

	updated, err := s.svc.Update(id, patch)
	if err != nil {
		return models.Project{}, err
	}
	s.ensureLoaded()
	s.replaceCached(id, updated)
	return updated, nil
}

// Delete removes the project with the given id.
func (s *ProjectsState) Delete(actor *models.User, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actor == nil {
		return ErrNoActor
	}
	if !projectpolicy.CanAccessProjectSettings(actor) {
		return ErrCannotEditProject
	}

	removed, err := s.svc.Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return projectstore.ErrProjectNotFound
	}
	s.ensureLoaded()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			break
		}
	}
	return nil
}

// InviteMember adds userID to the project invite list. The creator,
// existing members, and already invited users are rejected.
func (s *ProjectsState) InviteMember(actor *models.User, projectID, userID string) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.find(projectID)
	if !ok {
		return models.Project{}, projectstore.ErrProjectNotFound
	}
	if actor == nil {
		return models.Project{}, ErrNoActor
	}
	if !projectpolicy.CanAccessProjectSettings(actor) {
		return models.Project{}, ErrCannotEditProject
	}

	if project.CreatedBy == userID {
		return models.Project{}, ErrCreatorIsMember
	}
	for _, m := range project.Members {
		if m.UserID == userID {
			return models.Project{}, ErrAlreadyMember
		}
	}
	for _, id := range project.Invited {
		if id == userID {
			return models.Project{}, ErrAlreadyInvited
		}
	}

	invited := append(append([]string{}, project.Invited...), userID)
	updated, err := s.svc.Update(projectID, projectstore.Patch{Invited: invited, HasInvited: true})
	if err != nil {
		return models.Project{}, err
	}
	s.replaceCached(projectID, updated)
	return updated, nil
}

// RemoveMember drops userID from both the member and invite lists. The
// creator cannot be removed.
func (s *ProjectsState) RemoveMember(actor *models.User, projectID, userID string) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.find(projectID)
	if !ok {
		return models.Project{}, projectstore.ErrProjectNotFound
	}
	if actor == nil {
		return models.Project{}, ErrNoActor
	}
	if !projectpolicy.CanAccessProjectSettings(actor) {
		return models.Project{}, ErrCannotEditProject
	}
	if project.CreatedBy == userID {
		return models.Project{}, ErrCannotRemoveCreator
	}

	members := make([]models.ProjectMember, 0, len(project.Members))
	for _, m := range project.Members {
		if m.UserID != userID {
			members = append(members, m)
		}
	}
	invited := make([]string, 0, len(project.Invited))
	for _, id := range project.Invited {
		if id != userID {
			invited = append(invited, id)
		}
	}

	updated, err := s.svc.Update(projectID, projectstore.Patch{
		Members:    members,
		Invited:    invited,
		HasMembers: true,
		HasInvited: true,
	})
	if err != nil {
		return models.Project{}, err
	}
	s.replaceCached(projectID, updated)
	return updated, nil
}

// Join adds actor as a MEMBER of a public project, clearing any pending
// invite. Joining a project the actor already belongs to is a no-op.
func (s *ProjectsState) Join(actor *models.User, projectID string) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actor == nil {
		return models.Project{}, ErrNoActor
	}
	project, ok := s.find(projectID)
	if !ok {
		return models.Project{}, projectstore.ErrProjectNotFound
	}
	if project.Visibility != models.VisibilityPublic {
		return models.Project{}, ErrNotPublicProject
	}
	if project.CreatedBy == actor.ID {
		return project, nil
	}
	for _, m := range project.Members {
		if m.UserID == actor.ID {
			return project, nil
		}
	}

	members := append(append([]models.ProjectMember{}, project.Members...),
		models.ProjectMember{UserID: actor.ID, RoleInProject: models.ProjectRoleMember})
	invited := make([]string, 0, len(project.Invited))
	for _, id := range project.Invited {
		if id != actor.ID {
			invited = append(invited, id)
		}
	}

	updated, err := s.svc.Update(projectID, projectstore.Patch{
		Members:    members,
		Invited:    invited,
		HasMembers: true,
		HasInvited: true,
	})
	if err != nil {
		return models.Project{}, err
	}
	s.replaceCached(projectID, updated)
	return updated, nil
}

// ListVisible returns the projects userID may see.
func (s *ProjectsState) ListVisible(user *models.User) []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoaded()
	out := make([]models.Project, 0, len(s.projects))
	for i := range s.projects {
		if user != nil && projectpolicy.CanViewProject(&s.projects[i], user.ID) {
			out = append(out, s.projects[i])
		}
	}
	return out
}

// GetForUser returns the project when it exists and user may view it.
func (s *ProjectsState) GetForUser(projectID string, user *models.User) (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.find(projectID)
	if !ok || user == nil || !projectpolicy.CanViewProject(&project, user.ID) {
		return models.Project{}, false
	}
	return project, true
}
