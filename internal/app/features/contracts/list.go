// internal/app/features/contracts/list.go
package contracts

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

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (listviews.ContractQuery, pipeline.Result[models.Contract], bool) {
	q := listviews.ContractQueryFrom(r.URL.Query())
	scope, ok := authz.ScopeFor(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "contract list without session", "Please sign in to continue.", "/login")
		return q, pipeline.Result[models.Contract]{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := listing.Run(ctx, h.Deps, "contracts", h.store.List, scope, listviews.ContractView(q, h.ViewOptions()))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list contracts failed", err, "A database error occurred.", "/dashboard")
		return q, res, false
	}
	return q, res, true
}

// ServeList renders GET /contracts.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q, res, ok := h.load(w, r)
	if !ok {
		return
	}

	rows, page := paging.Window(res.Rows, q.Page, paging.PageSize)
	sortName, sortDir := listviews.ContractSort(q)
	data := listData{
		BaseVM:        viewdata.NewBaseVM(r, "Contracts", "/dashboard"),
		Q:             q.Search,
		Status:        listing.NewSelect("status", models.ContractStatuses, q.Status),
		MinRent:       listing.Bound(q.MinRent),
		MaxRent:       listing.Bound(q.MaxRent),
		StartFrom:     listing.DateInput(q.StartFrom),
		StartTo:       listing.DateInput(q.StartTo),
		Sorts:         listing.NewSortControls(listviews.ContractSortFields(), sortName, sortDir),
		Portfolio:     cards(res.Portfolio),
		Results:       cards(res.Results),
		Rows:          toRows(rows),
		Pager:         listing.NewPager(r, page),
		Matched:       res.Matched,
		Total:         res.Total,
		FiltersActive: res.FiltersActive,
		Empty:         res.Empty(),
		ResetURL:      r.URL.Path,
		ExportHref:    listing.ExportHref(r, "contracts"),
	}

	if listing.IsTableRefresh(r, "contracts-table") {
		templates.RenderSnippet(w, "contracts_table", data)
		return
	}
	templates.Render(w, r, "contracts_list", data)
}

// ServeAPI handles GET /api/v1/contracts.
func (h *Handler) ServeAPI(w http.ResponseWriter, r *http.Request) {
	_, res, ok := h.load(w, r)
	if !ok {
		return
	}
	listing.WriteJSON(w, listing.NewResponse(r, res))
}
