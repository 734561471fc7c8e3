// internal/app/features/tickets/routes.go
package tickets

import (
	"github.com/go-chi/chi/v5"
	"github.com/rent360/rent360/internal/app/system/auth"
)

// Routes mounts the HTML queue (typically at "/tickets"). Every signed-in
// role may open it; the store narrows non-support users to their own tickets.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeList)
	})
	return r
}

// APIRoutes mounts the JSON queue (typically at "/api/v1/tickets").
func APIRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeAPI)
	})
	return r
}
