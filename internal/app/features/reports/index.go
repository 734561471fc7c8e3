// internal/app/features/reports/index.go
package reports

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/rent360/rent360/internal/app/listviews"
	"github.com/rent360/rent360/internal/app/system/authz"
	"github.com/rent360/rent360/internal/app/system/viewdata"
)

// available returns the exports role may download, in menu order.
func (h *Handler) available(role string) []reportLink {
	var out []reportLink
	for _, entity := range listviews.Entities {
		src, ok := h.sources[entity]
		if ok && src.allows(role) {
			out = append(out, reportLink{Label: src.label, Href: "/reports/" + entity + ".csv"})
		}
	}
	return out
}

// ServeIndex renders GET /reports.
func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	role, _, _, _ := authz.UserCtx(r)
	templates.Render(w, r, "reports_index", indexData{
		BaseVM:  viewdata.NewBaseVM(r, "Reports", "/dashboard"),
		Reports: h.available(role),
	})
}
