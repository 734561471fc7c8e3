// internal/app/features/reports/routes.go
package reports

import (
	"github.com/go-chi/chi/v5"
	"github.com/rent360/rent360/internal/app/system/auth"
)

// Routes mounts the reports (typically at "/reports"). Per-entity role
// gating is enforced inside the handlers.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(rr chi.Router) {
		rr.Use(sm.RequireSignedIn)
		rr.Get("/", h.ServeIndex)
		rr.Get("/{entity}.csv", h.ServeCSV)
	})
	return r
}
