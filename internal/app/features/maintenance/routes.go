// internal/app/features/maintenance/routes.go
package maintenance

import (
	"github.com/go-chi/chi/v5"
	"github.com/rent360/rent360/internal/app/system/auth"
	"github.com/rent360/rent360/internal/domain/models"
)

var (
	viewers    = []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker, models.RoleTenant, models.RoleRunner}
	requesters = []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker, models.RoleTenant}
)

// Routes mounts the HTML pages (typically at "/maintenance").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.With(sm.RequireRole(viewers...)).Get("/", h.ServeList)
		pr.With(sm.RequireRole(requesters...)).Get("/new", h.ServeNew)
		pr.With(sm.RequireRole(requesters...)).Post("/new", h.HandleNew)
	})
	return r
}

// APIRoutes mounts the JSON endpoints (typically at "/api/v1/maintenance").
func APIRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.With(sm.RequireRole(viewers...)).Get("/", h.ServeAPI)
		pr.With(sm.RequireRole(requesters...)).Post("/", h.CreateAPI)
	})
	return r
}
