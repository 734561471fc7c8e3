// internal/app/features/properties/handler.go
package properties

import (
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	propertystore "github.com/rent360/rent360/internal/app/store/properties"
)

// Handler serves the property list page and its JSON twin.
type Handler struct {
	listing.Deps
	store *propertystore.Store
}

// NewHandler constructs a properties Handler.
func NewHandler(d listing.Deps) *Handler {
	return &Handler{Deps: d, store: propertystore.New(d.DB)}
}
