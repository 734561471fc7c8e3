// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/go-chi/chi/v5"
	"github.com/rent360/rent360/internal/app/system/auth"
)

// Routes wires the dashboard (typically at "/dashboard"). The handler picks
// the panels from the signed-in user's role.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeDashboard)
	})
	return r
}

// APIRoutes mounts the JSON twin (typically at "/api/v1/dashboard").
func APIRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeAPI)
	})
	return r
}
