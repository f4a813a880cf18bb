package state

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/slatetrack/slatetrack/internal/app/storage"
	"github.com/slatetrack/slatetrack/internal/domain/models"
)

// ErrInvalidCredentials is returned when no account matches the supplied
// username and password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthState is the single-user session analog of the persisted app: it
// tracks the most recent sign-in and persists it so the session survives
// a restart, mirroring how the single-tab original remembers its user.
// Request authentication does NOT flow through here; the cookie session
// middleware in system/auth resolves the per-request actor. The persisted
// record is only trusted if the user still exists in the catalog.
type AuthState struct {
	kv      storage.KV
	users   *UsersState
	mu      sync.Mutex
	current *models.User
	logger  *zap.Logger
}

func newAuthState(kv storage.KV, users *UsersState, logger *zap.Logger) *AuthState {
	s := &AuthState{kv: kv, users: users, logger: logger}
	s.restore()
	return s
}

// restore revives a persisted session, resolving the stored user against
// the live catalog so stale snapshots pick up later edits.
func (s *AuthState) restore() {
	var saved models.User
	if !s.kv.Get(storage.AuthKey, &saved) || saved.ID == "" {
		return
	}
	s.current = s.users.GetByID(saved.ID)
	if s.current == nil {
		s.kv.Remove(storage.AuthKey)
	}
}

// Login matches credentials against the catalog and opens a session.
func (s *AuthState) Login(username, password string) (models.User, error) {
	user := s.users.GetByCredentials(username, password)
	if user == nil {
		s.logger.Info("login rejected", zap.String("username", username))
		return models.User{}, ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = user
	if err := s.kv.Set(storage.AuthKey, user); err != nil {
		return models.User{}, err
	}
	s.logger.Info("login", zap.String("user_id", user.ID))
	return *user, nil
}

// Logout clears the session.
func (s *AuthState) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logoutLocked()
}

// logoutLocked clears the session. Caller holds mu.
func (s *AuthState) logoutLocked() error {
	s.current = nil
	return s.kv.Remove(storage.AuthKey)
}

// Current returns the signed-in user, or nil.
func (s *AuthState) Current() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// IsAuthenticated reports whether a user is signed in.
func (s *AuthState) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// Sync re-reads the signed-in user from the catalog, picking up edits
// made through the user store. A deleted account ends the session.
func (s *AuthState) Sync() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	refreshed := s.users.GetByID(s.current.ID)
	if refreshed == nil {
		s.logoutLocked()
		return nil
	}
	s.current = refreshed
	s.kv.Set(storage.AuthKey, refreshed)
	u := *refreshed
	return &u
}
