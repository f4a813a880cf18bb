// internal/app/features/login/handler.go
package login

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/slatetrack/slatetrack/internal/app/features/shared/respond"
	"github.com/slatetrack/slatetrack/internal/app/state"
	"github.com/slatetrack/slatetrack/internal/app/system/auth"
	"github.com/slatetrack/slatetrack/internal/app/system/ratelimit"
	"github.com/slatetrack/slatetrack/internal/domain/models"
)

// Handler serves session endpoints: sign in, sign out, and the current
// user probe.
type Handler struct {
	App        *state.App
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	Log        *zap.Logger
}

func NewHandler(app *state.App, sessionMgr *auth.SessionManager, limiter *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{App: app, SessionMgr: sessionMgr, Limiter: limiter, Log: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userView strips the password from user payloads.
type userView struct {
	ID           string      `json:"id"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Username     string      `json:"username"`
	Position     string      `json:"position"`
	ProfileImage string      `json:"profileImage"`
	Role         models.Role `json:"role"`
}

// ViewOf builds the wire representation of a user.
func ViewOf(u models.User) userView {
	return userView{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Name:         u.Name,
		Email:        u.Email,
		Username:     u.Username,
		Position:     u.Position,
		ProfileImage: u.ProfileImage,
		Role:         u.Role,
	}
}

// HandleLogin handles POST /login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if h.Limiter != nil {
		if ok, msg := h.Limiter.Check(r, req.Username); !ok {
			h.Log.Warn("login throttled", zap.String("ip", ratelimit.ClientIP(r)))
			respond.Error(w, http.StatusTooManyRequests, msg)
			return
		}
	}

	user, err := h.App.Auth.Login(req.Username, req.Password)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetUser(req.Username)
	}
	if err := h.SessionMgr.SignIn(w, r, &user); err != nil {
		h.Log.Error("sign in failed", zap.Error(err), zap.String("user_id", user.ID))
		respond.Error(w, http.StatusInternalServerError, "unable to create session")
		return
	}

	respond.JSON(w, http.StatusOK, ViewOf(user))
}

// HandleLogout handles POST /logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.App.Auth.Logout(); err != nil {
		h.Log.Error("logout failed", zap.Error(err))
	}
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("sign out failed", zap.Error(err))
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ServeMe handles GET /me. It never errors; an anonymous caller gets
// isAuthenticated false.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		respond.JSON(w, http.StatusOK, map[string]any{"isAuthenticated": false})
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"isAuthenticated": true,
		"user":            ViewOf(*user),
	})
}
