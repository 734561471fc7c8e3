// internal/app/features/ratings/handler.go
package ratings

import (
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	ratingstore "github.com/rent360/rent360/internal/app/store/ratings"
)

// Handler serves the ratings list page and its JSON twin.
type Handler struct {
	listing.Deps
	store *ratingstore.Store
}

// NewHandler constructs a ratings Handler.
func NewHandler(d listing.Deps) *Handler {
	return &Handler{Deps: d, store: ratingstore.New(d.DB)}
}
