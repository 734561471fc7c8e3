// internal/app/features/tickets/handler.go
package tickets

import (
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	ticketstore "github.com/rent360/rent360/internal/app/store/tickets"
)

// Handler serves the support ticket queue and its JSON twin.
type Handler struct {
	listing.Deps
	store *ticketstore.Store
}

// NewHandler constructs a tickets Handler.
func NewHandler(d listing.Deps) *Handler {
	return &Handler{Deps: d, store: ticketstore.New(d.DB)}
}
