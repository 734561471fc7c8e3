// internal/app/features/tenants/handler.go
package tenants

import (
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	tenantstore "github.com/rent360/rent360/internal/app/store/tenants"
)

// Handler serves the tenant list page and its JSON twin.
type Handler struct {
	listing.Deps
	store *tenantstore.Store
}

// NewHandler constructs a tenants Handler.
func NewHandler(d listing.Deps) *Handler {
	return &Handler{Deps: d, store: tenantstore.New(d.DB)}
}
