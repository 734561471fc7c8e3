// internal/app/features/contracts/routes.go
package contracts

import (
	"github.com/go-chi/chi/v5"
	"github.com/rent360/rent360/internal/app/system/auth"
	"github.com/rent360/rent360/internal/domain/models"
)

var viewers = []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker, models.RoleTenant}

// Routes mounts the HTML list (typically at "/contracts").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(viewers...))
		pr.Get("/", h.ServeList)
	})
	return r
}

// APIRoutes mounts the JSON list (typically at "/api/v1/contracts").
func APIRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(viewers...))
		pr.Get("/", h.ServeAPI)
	})
	return r
}
