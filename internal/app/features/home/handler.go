// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/rent360/rent360/internal/app/system/auth"
	"github.com/rent360/rent360/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler serves the landing page.
type Handler struct {
	Log           *zap.Logger
	GoogleEnabled bool
}

func NewHandler(googleEnabled bool, logger *zap.Logger) *Handler {
	return &Handler{
		Log:           logger,
		GoogleEnabled: googleEnabled,
	}
}

type homeData struct {
	viewdata.BaseVM
	GoogleEnabled bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRoot sends signed-in users to their dashboard and shows everyone else
// the landing page.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "home", homeData{
		BaseVM:        viewdata.NewBaseVM(r, "Welcome", "/"),
		GoogleEnabled: h.GoogleEnabled,
	})
}
