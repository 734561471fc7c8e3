// internal/app/features/maintenance/handler.go
package maintenance

import (
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	contractstore "github.com/rent360/rent360/internal/app/store/contracts"
	maintenancestore "github.com/rent360/rent360/internal/app/store/maintenance"
	propertystore "github.com/rent360/rent360/internal/app/store/properties"
	userstore "github.com/rent360/rent360/internal/app/store/users"
)

// Handler serves the maintenance list, its JSON twin and request intake.
type Handler struct {
	listing.Deps
	store      *maintenancestore.Store
	properties *propertystore.Store
	contracts  *contractstore.Store
	users      *userstore.Store
}

// NewHandler constructs a maintenance Handler.
func NewHandler(d listing.Deps) *Handler {
	return &Handler{
		Deps:       d,
		store:      maintenancestore.New(d.DB),
		properties: propertystore.New(d.DB),
		contracts:  contractstore.New(d.DB),
		users:      userstore.New(d.DB),
	}
}
