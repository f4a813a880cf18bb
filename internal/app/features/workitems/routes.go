// internal/app/features/workitems/routes.go
package workitems

import (
	"github.com/go-chi/chi/v5"

	"github.com/slatetrack/slatetrack/internal/app/system/auth"
)

// Routes returns the item-scoped subrouter, mounted under /work-items.
// The project-scoped collection endpoints are registered by the projects
// feature.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.ServeGet)
		r.Put("/", h.HandleUpdate)
		r.Post("/comments", h.HandleComment)
		r.Post("/move", h.HandleMove)
	})

	return r
}
