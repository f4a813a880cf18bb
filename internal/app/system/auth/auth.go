// Package auth manages cookie sessions and the per-request current user.
// The SessionManager is injected where needed; there is no package-level
// session store.
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/slatetrack/slatetrack/internal/domain/models"
)

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// UserFetcher resolves a user id to the current user record, or nil when
// the account no longer exists. LoadSessionUser calls it on every
// request so role changes and deletions take effect immediately.
type UserFetcher func(id string) *models.User

// SessionManager wraps a gorilla cookie store with the session shape this
// app uses: an authenticated flag plus the user id.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	fetcher UserFetcher
	log     *zap.Logger
}

// NewSessionManager builds a SessionManager. An empty sessionKey gets a
// random key, which invalidates sessions on restart; fine for dev, set a
// real key in production. The secure flag controls cookie Secure and
// SameSite modes.
func NewSessionManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	key := []byte(sessionKey)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		logger.Warn("no session key configured; sessions will not survive restarts")
	} else if len(key) < 32 {
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(key)))
	}

	store := sessions.NewCookieStore(key)
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// SetUserFetcher installs the lookup used to resolve session user ids.
func (m *SessionManager) SetUserFetcher(f UserFetcher) {
	m.fetcher = f
}

// CurrentUser returns the user injected by LoadSessionUser.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*models.User)
	return u, ok
}

// SignIn marks the session as authenticated for user.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, user *models.User) error {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		// A stale or re-keyed cookie decodes to an error and a fresh
		// session; continue with the fresh one.
		m.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
	}
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = user.ID
	return sess.Save(r, w)
}

// SignOut clears the session.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	delete(sess.Values, isAuthKey)
	delete(sess.Values, userIDKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// LoadSessionUser injects the signed-in user into the request context.
// The user is re-fetched on every request; a session whose account has
// been deleted carries no user.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.store.Get(r, m.name)

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth && m.fetcher != nil {
			if id, _ := sess.Values[userIDKey].(string); id != "" {
				if u := m.fetcher(id); u != nil {
					r = r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// WithTestUser injects user into the request context directly. Handler
// tests use it to bypass the session middleware.
func WithTestUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// RequireSignedIn rejects requests with no user in context with a JSON
// 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
