// internal/app/features/payments/list.go
package payments

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

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (listviews.PaymentQuery, pipeline.Result[models.Payment], bool) {
	q := listviews.PaymentQueryFrom(r.URL.Query())
	scope, ok := authz.ScopeFor(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "payment list without session", "Please sign in to continue.", "/login")
		return q, pipeline.Result[models.Payment]{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := listing.Run(ctx, h.Deps, "payments", h.store.List, scope, listviews.PaymentView(q, h.ViewOptions()))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list payments failed", err, "A database error occurred.", "/dashboard")
		return q, res, false
	}
	return q, res, true
}

// ServeList renders GET /payments.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q, res, ok := h.load(w, r)
	if !ok {
		return
	}

	rows, page := paging.Window(res.Rows, q.Page, paging.PageSize)
	sortName, sortDir := listviews.PaymentSort(q)
	data := listData{
		BaseVM:         viewdata.NewBaseVM(r, "Payments", "/dashboard"),
		Q:              q.Search,
		Status:         listing.NewSelect("status", models.PaymentStatuses, q.Status),
		Method:         listing.NewSelect("method", models.PaymentMethods, q.Method),
		MinAmount:      listing.Bound(q.MinAmount),
		MaxAmount:      listing.Bound(q.MaxAmount),
		DueFrom:        listing.DateInput(q.DueFrom),
		DueTo:          listing.DateInput(q.DueTo),
		NeedsAttention: q.NeedsAttention,
		Sorts:          listing.NewSortControls(listviews.PaymentSortFields(), sortName, sortDir),
		Portfolio:      cards(res.Portfolio),
		Results:        cards(res.Results),
		Rows:           toRows(rows, h.attention()),
		Pager:          listing.NewPager(r, page),
		Matched:        res.Matched,
		Total:          res.Total,
		FiltersActive:  res.FiltersActive,
		Empty:          res.Empty(),
		ResetURL:       r.URL.Path,
		ExportHref:     listing.ExportHref(r, "payments"),
	}

	if listing.IsTableRefresh(r, "payments-table") {
		templates.RenderSnippet(w, "payments_table", data)
		return
	}
	templates.Render(w, r, "payments_list", data)
}

// ServeAPI handles GET /api/v1/payments.
func (h *Handler) ServeAPI(w http.ResponseWriter, r *http.Request) {
	_, res, ok := h.load(w, r)
	if !ok {
		return
	}
	listing.WriteJSON(w, listing.NewResponse(r, res))
}

func (h *Handler) attention() func(models.Payment) bool {
	return listviews.PaymentAttention(h.ViewOptions())
}
