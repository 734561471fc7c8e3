// internal/app/features/contracts/handler.go
package contracts

import (
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	contractstore "github.com/rent360/rent360/internal/app/store/contracts"
)

// Handler serves the contract list page and its JSON twin.
type Handler struct {
	listing.Deps
	store *contractstore.Store
}

// NewHandler constructs a contracts Handler.
func NewHandler(d listing.Deps) *Handler {
	return &Handler{Deps: d, store: contractstore.New(d.DB)}
}
