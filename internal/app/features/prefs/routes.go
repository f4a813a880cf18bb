// internal/app/features/prefs/routes.go
package prefs

import "github.com/go-chi/chi/v5"

// Routes returns the preferences subrouter, mounted under /prefs.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/theme", h.ServeTheme)
	r.Put("/theme", h.HandleSetTheme)
	return r
}
