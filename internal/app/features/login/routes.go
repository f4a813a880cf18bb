// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// MountRoutes registers the session endpoints on the root router. No
// auth middleware is required; /me checks the session itself.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)
	r.Get("/me", h.ServeMe)
}
