// internal/app/features/tenants/list.go
package tenants

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	"github.com/rent360/rent360/internal/app/listviews"
	"github.com/rent360/rent360/internal/app/system/authz"
	"github.com/rent360/rent360/internal/app/system/paging"
	"github.com/rent360/rent360/internal/app/system/pipeline"
	"github.com/rent360/rent360/internal/app/system/timeouts"
	"github.com/rent360/rent360/internal/app/system/viewdata"
	"github.com/rent360/rent360/internal/domain/models"
)

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (listviews.TenantQuery, pipeline.Result[models.Tenant], bool) {
	q := listviews.TenantQueryFrom(r.URL.Query())
	scope, ok := authz.ScopeFor(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "tenant list without session", "Please sign in to continue.", "/login")
		return q, pipeline.Result[models.Tenant]{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := listing.Run(ctx, h.Deps, "tenants", h.store.List, scope, listviews.TenantView(q, h.ViewOptions()))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list tenants failed", err, "A database error occurred.", "/dashboard")
		return q, res, false
	}
	return q, res, true
}

// ServeList renders GET /tenants. An HTMX request targeting the table only
// gets the table back.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q, res, ok := h.load(w, r)
	if !ok {
		return
	}

	rows, page := paging.Window(res.Rows, q.Page, paging.PageSize)
	sortName, sortDir := listviews.TenantSort(q)
	data := listData{
		BaseVM:        viewdata.NewBaseVM(r, "Tenants", "/dashboard"),
		Q:             q.Search,
		PaymentStatus: listing.NewSelect("payment_status", models.TenantPaymentStatuses, q.PaymentStatus),
		MinRent:       listing.Bound(q.MinRent),
		MaxRent:       listing.Bound(q.MaxRent),
		Sorts:         listing.NewSortControls(listviews.TenantSortFields(), sortName, sortDir),
		Portfolio:     cards(res.Portfolio),
		Results:       cards(res.Results),
		Rows:          toRows(rows),
		Pager:         listing.NewPager(r, page),
		Matched:       res.Matched,
		Total:         res.Total,
		FiltersActive: res.FiltersActive,
		Empty:         res.Empty(),
		ResetURL:      r.URL.Path,
		ExportHref:    listing.ExportHref(r, "tenants"),
	}

	if listing.IsTableRefresh(r, "tenants-table") {
		templates.RenderSnippet(w, "tenants_table", data)
		return
	}
	templates.Render(w, r, "tenants_list", data)
}

// ServeAPI handles GET /api/v1/tenants.
func (h *Handler) ServeAPI(w http.ResponseWriter, r *http.Request) {
	_, res, ok := h.load(w, r)
	if !ok {
		return
	}
	listing.WriteJSON(w, listing.NewResponse(r, res))
}
