// internal/app/features/payments/handler.go
package payments

import (
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	paymentstore "github.com/rent360/rent360/internal/app/store/payments"
)

// Handler serves the payment list page and its JSON twin.
type Handler struct {
	listing.Deps
	store *paymentstore.Store
}

// NewHandler constructs a payments Handler.
func NewHandler(d listing.Deps) *Handler {
	return &Handler{Deps: d, store: paymentstore.New(d.DB)}
}
