// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/slatetrack/slatetrack/internal/app/system/auth"
)

// Routes returns the user management subrouter, mounted under /users.
// Every endpoint requires a signed-in caller; finer-grained permission
// checks live in the state layer.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
