// internal/app/features/projects/routes.go
package projects

import (
	"github.com/go-chi/chi/v5"

	workitemsfeature "github.com/slatetrack/slatetrack/internal/app/features/workitems"
	"github.com/slatetrack/slatetrack/internal/app/system/auth"
)

// Routes returns the project subrouter, mounted under /projects. The
// project-scoped work item collection lives here too so it can share the
// {id} URL parameter.
func Routes(h *Handler, wi *workitemsfeature.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.ServeGet)
		r.Put("/", h.HandleUpdate)
		r.Delete("/", h.HandleDelete)
		r.Post("/invite", h.HandleInvite)
		r.Post("/remove-member", h.HandleRemoveMember)
		r.Post("/join", h.HandleJoin)

		r.Get("/work-items", wi.ServeListByProject)
		r.Post("/work-items", wi.HandleCreate)
	})

	return r
}
