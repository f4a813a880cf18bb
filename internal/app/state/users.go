package state

import (
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/slatetrack/slatetrack/internal/app/policy/userpolicy"
	"github.com/slatetrack/slatetrack/internal/app/storage"
	"github.com/slatetrack/slatetrack/internal/app/system/normalize"
	"github.com/slatetrack/slatetrack/internal/domain/models"
)

var (
	// ErrNoActor is returned when an operation requires a signed-in user.
	ErrNoActor = errors.New("no authenticated user")
	// ErrCannotManageUsers is returned when the actor may not create or edit users.
	ErrCannotManageUsers = errors.New("you do not have permission to manage users")
	// ErrCannotAssignRole is returned when the actor may not grant the requested role.
	ErrCannotAssignRole = errors.New("you do not have permission to assign that role")
	// ErrCannotRemoveUser is returned when the actor may not remove users.
	ErrCannotRemoveUser = errors.New("only super admins can remove users")
	// ErrCannotRemoveSelf is returned when the actor targets their own account.
	ErrCannotRemoveSelf = errors.New("you cannot remove the account you are signed in with")
	// ErrUserNotFound is returned when the target user id does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserFieldsRequired is returned when a required user field is blank.
	ErrUserFieldsRequired = errors.New("first name, last name, email, username, password, position, and role are required")
	// ErrInvalidPosition is returned when the position is not in the catalog.
	ErrInvalidPosition = errors.New("selected position is invalid")
	// ErrPasswordMismatch is returned when the confirmation password differs.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrDuplicateEmail is returned when another account owns the email.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrDuplicateUsername is returned when another account owns the username.
	ErrDuplicateUsername = errors.New("a user with this username already exists")
)

// seededUsers is the demo catalog written on first run when seeding is
// enabled and no usable user collection exists yet.
var seededUsers = []models.User{
	{
		ID:        "u_admin",
		FirstName: "Avery",
		LastName:  "Stone",
		Email:     "avery.stone@slatetrack.dev",
		Username:  "avery",
		Password:  "avery123",
		Position:  "Team Lead",
		Role:      models.RoleSuperAdmin,
	},
	{
		ID:        "u_manager",
		FirstName: "Jordan",
		LastName:  "Reyes",
		Email:     "jordan.reyes@slatetrack.dev",
		Username:  "jordan",
		Password:  "jordan123",
		Position:  "Full Stack Dev",
		Role:      models.RoleAdmin,
	},
	{
		ID:        "u_member",
		FirstName: "Sam",
		LastName:  "Okafor",
		Email:     "sam.okafor@slatetrack.dev",
		Username:  "sam",
		Password:  "sam123",
		Position:  "QA",
		Role:      models.RoleMember,
	},
}

// UserCreate carries the input for a new account. ConfirmPassword is
// optional; when non-empty it must match Password.
type UserCreate struct {
	FirstName       string      `json:"firstName"`
	LastName        string      `json:"lastName"`
	Email           string      `json:"email"`
	Username        string      `json:"username"`
	Password        string      `json:"password"`
	ConfirmPassword string      `json:"confirmPassword"`
	Position        string      `json:"position"`
	ProfileImage    string      `json:"profileImage"`
	Role            models.Role `json:"role"`
}

// UserUpdate carries a partial edit. Nil fields keep the stored value;
// an explicit empty Password also keeps the stored one.
type UserUpdate struct {
	FirstName       *string      `json:"firstName,omitempty"`
	LastName        *string      `json:"lastName,omitempty"`
	Email           *string      `json:"email,omitempty"`
	Username        *string      `json:"username,omitempty"`
	Password        *string      `json:"password,omitempty"`
	ConfirmPassword *string      `json:"confirmPassword,omitempty"`
	Position        *string      `json:"position,omitempty"`
	ProfileImage    *string      `json:"profileImage,omitempty"`
	Role            *models.Role `json:"role,omitempty"`
}

// UsersState owns the user catalog. The full catalog lives in memory and
// is rewritten to storage on every mutation. Safe for concurrent use;
// every request handler shares one instance.
type UsersState struct {
	kv     storage.KV
	mu     sync.Mutex
	users  []models.User
	logger *zap.Logger
}

func newUsersState(kv storage.KV, logger *zap.Logger) *UsersState {
	s := &UsersState{kv: kv, logger: logger}
	s.load()
	return s
}

// load reads the persisted catalog, normalizing every record. A payload
// where no user carries credentials is treated as unusable and dropped,
// so a later EnsureSeeded can replace it.
func (s *UsersState) load() {
	var raw []models.User
	if !s.kv.Get(storage.UsersKey, &raw) {
		s.users = nil
		return
	}

	usable := false
	users := make([]models.User, 0, len(raw))
	for _, u := range raw {
		n := models.NormalizeUser(u)
		if n.Username != "" && n.Password != "" {
			usable = true
		}
		users = append(users, n)
	}
	if !usable {
		s.users = nil
		return
	}
	s.users = users
}

// EnsureSeeded writes the demo users when no usable catalog exists and
// seeding is enabled. Called once during startup.
func (s *UsersState) EnsureSeeded(seed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.users) > 0 {
		return s.persist()
	}
	if !seed {
		return nil
	}

	users := make([]models.User, 0, len(seededUsers))
	for _, u := range seededUsers {
		users = append(users, models.NormalizeUser(u))
	}
	s.users = users
	s.logger.Info("seeded demo users", zap.Int("count", len(users)))
	return s.persist()
}

// persist rewrites the catalog. Caller holds mu.
func (s *UsersState) persist() error {
	return s.kv.Set(storage.UsersKey, s.users)
}

// List returns a copy of the user catalog.
func (s *UsersState) List() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// GetByID returns the user with the given id, or nil.
func (s *UsersState) GetByID(id string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u
		}
	}
	return nil
}

// GetByCredentials matches a username (case-insensitive) and plaintext
// password, returning nil on any mismatch.
func (s *UsersState) GetByCredentials(username, password string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = normalize.Username(username)
	for i := range s.users {
		if s.users[i].Username == username && s.users[i].Password == password {
			u := s.users[i]
			return &u
		}
	}
	return nil
}

// Create validates and stores a new account on behalf of actor.
func (s *UsersState) Create(actor *models.User, data UserCreate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actor == nil {
		return models.User{}, ErrNoActor
	}
	if !userpolicy.CanManageUsers(actor) {
		return models.User{}, ErrCannotManageUsers
	}

	next := models.User{
		ID:           models.NewUserID(),
		FirstName:    strings.TrimSpace(data.FirstName),
		LastName:     strings.TrimSpace(data.LastName),
		Email:        normalize.Email(data.Email),
		Username:     normalize.Username(data.Username),
		Password:     data.Password,
		Position:     strings.TrimSpace(data.Position),
		ProfileImage: data.ProfileImage,
		Role:         data.Role,
	}

	if next.FirstName == "" || next.LastName == "" || next.Email == "" ||
		next.Username == "" || next.Password == "" || next.Position == "" || next.Role == "" {
		return models.User{}, ErrUserFieldsRequired
	}
	if !userpolicy.CanAssignRole(actor, next.Role) {
		return models.User{}, ErrCannotAssignRole
	}
	if !models.IsValidPosition(next.Position) {
		return models.User{}, ErrInvalidPosition
	}
	if data.ConfirmPassword != "" && data.ConfirmPassword != next.Password {
		return models.User{}, ErrPasswordMismatch
	}
	if err := s.checkConflicts(next.Email, next.Username, ""); err != nil {
		return models.User{}, err
	}

	next = models.NormalizeUser(next)
	s.users = append(s.users, next)
	if err := s.persist(); err != nil {
		return models.User{}, err
	}
	s.logger.Info("user created", zap.String("user_id", next.ID), zap.String("role", string(next.Role)))
	return next, nil
}

// Update applies a partial edit to the user with the given id.
func (s *UsersState) Update(actor *models.User, id string, data UserUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actor == nil {
		return models.User{}, ErrNoActor
	}
	if !userpolicy.CanManageUsers(actor) {
		return models.User{}, ErrCannotManageUsers
	}

	idx := -1
	for i := range s.users {
		if s.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.User{}, ErrUserNotFound
	}
	current := s.users[idx]

	next := current
	if data.FirstName != nil {
		next.FirstName = strings.TrimSpace(*data.FirstName)
	}
	if data.LastName != nil {
		next.LastName = strings.TrimSpace(*data.LastName)
	}
	if data.Email != nil {
		next.Email = normalize.Email(*data.Email)
	}
	if data.Username != nil {
		next.Username = normalize.Username(*data.Username)
	}
	if data.Password != nil && *data.Password != "" {
		next.Password = *data.Password
	}
	if data.Position != nil {
		next.Position = strings.TrimSpace(*data.Position)
	}
	if data.ProfileImage != nil {
		next.ProfileImage = *data.ProfileImage
	}
	if data.Role != nil {
		next.Role = *data.Role
	}

	if next.FirstName == "" || next.LastName == "" || next.Email == "" ||
		next.Username == "" || next.Password == "" || next.Position == "" || next.Role == "" {
		return models.User{}, ErrUserFieldsRequired
	}
	if !userpolicy.CanAssignRole(actor, next.Role) {
		return models.User{}, ErrCannotAssignRole
	}
	if !models.IsValidPosition(next.Position) {
		return models.User{}, ErrInvalidPosition
	}
	if data.ConfirmPassword != nil && *data.ConfirmPassword != "" && *data.ConfirmPassword != next.Password {
		return models.User{}, ErrPasswordMismatch
	}
	if err := s.checkConflicts(next.Email, next.Username, id); err != nil {
		return models.User{}, err
	}

	next = models.NormalizeUser(next)
	s.users[idx] = next
	if err := s.persist(); err != nil {
		s.users[idx] = current
		return models.User{}, err
	}
	return next, nil
}

// Remove deletes the user with the given id. Only super admins may
// remove users, and never their own account.
func (s *UsersState) Remove(actor *models.User, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actor == nil {
		return ErrNoActor
	}
	if !userpolicy.CanRemoveUser(actor) {
		return ErrCannotRemoveUser
	}
	if actor.ID == id {
		return ErrCannotRemoveSelf
	}

	idx := -1
	for i := range s.users {
		if s.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUserNotFound
	}

	removed := s.users[idx]
	s.users = append(s.users[:idx], s.users[idx+1:]...)
	if err := s.persist(); err != nil {
		return err
	}
	s.logger.Info("user removed", zap.String("user_id", removed.ID))
	return nil
}

// checkConflicts rejects an email or username already owned by a
// different account. excludeID skips the account being edited. Caller
// holds mu.
func (s *UsersState) checkConflicts(email, username, excludeID string) error {
	for i := range s.users {
		if s.users[i].ID == excludeID {
			continue
		}
		if s.users[i].Email == email {
			return ErrDuplicateEmail
		}
		if s.users[i].Username == username {
			return ErrDuplicateUsername
		}
	}
	return nil
}
