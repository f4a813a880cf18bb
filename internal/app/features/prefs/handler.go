// internal/app/features/prefs/handler.go
package prefs

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/slatetrack/slatetrack/internal/app/features/shared/respond"
	"github.com/slatetrack/slatetrack/internal/app/state"
)

// Handler serves UI preference endpoints.
type Handler struct {
	App *state.App
	Log *zap.Logger
}

func NewHandler(app *state.App, logger *zap.Logger) *Handler {
	return &Handler{App: app, Log: logger}
}

type themeBody struct {
	Theme string `json:"theme"`
}

// ServeTheme handles GET /prefs/theme.
func (h *Handler) ServeTheme(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, themeBody{Theme: h.App.Prefs.Theme()})
}

// HandleSetTheme handles PUT /prefs/theme. Unknown themes coerce to
// light rather than erroring.
func (h *Handler) HandleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeBody
	if !respond.Decode(w, r, &req) {
		return
	}

	applied, err := h.App.Prefs.SetTheme(req.Theme)
	if err != nil {
		h.Log.Error("persist theme failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "unable to save theme")
		return
	}
	respond.JSON(w, http.StatusOK, themeBody{Theme: applied})
}
