// internal/app/features/tickets/list.go
package tickets

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

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (listviews.TicketQuery, pipeline.Result[models.SupportTicket], bool) {
	q := listviews.TicketQueryFrom(r.URL.Query())
	scope, ok := authz.ScopeFor(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "ticket list without session", "Please sign in to continue.", "/login")
		return q, pipeline.Result[models.SupportTicket]{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := listing.Run(ctx, h.Deps, "tickets", h.store.List, scope, listviews.TicketView(q, h.ViewOptions()))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list tickets failed", err, "A database error occurred.", "/dashboard")
		return q, res, false
	}
	return q, res, true
}

// ServeList renders GET /tickets.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q, res, ok := h.load(w, r)
	if !ok {
		return
	}

	opts := h.ViewOptions()
	rows, page := paging.Window(res.Rows, q.Page, paging.PageSize)
	sortName, sortDir := listviews.TicketSort(q)
	data := listData{
		BaseVM:         viewdata.NewBaseVM(r, "Support", "/dashboard"),
		Q:              q.Search,
		Status:         listing.NewSelect("status", models.TicketStatuses, q.Status),
		Priority:       listing.NewSelect("priority", models.Priorities, q.Priority),
		Category:       listing.NewSelect("category", models.TicketCategories, q.Category),
		From:           listing.DateInput(q.CreatedFrom),
		To:             listing.DateInput(q.CreatedTo),
		NeedsAttention: q.NeedsAttention,
		Sorts:          listing.NewSortControls(listviews.TicketSortFields(), sortName, sortDir),
		Portfolio:      cards(res.Portfolio),
		Results:        cards(res.Results),
		Rows:           toRows(rows, listviews.TicketAttention(opts), opts.Now),
		Pager:          listing.NewPager(r, page),
		Matched:        res.Matched,
		Total:          res.Total,
		FiltersActive:  res.FiltersActive,
		Empty:          res.Empty(),
		ResetURL:       r.URL.Path,
		ExportHref:     listing.ExportHref(r, "tickets"),
	}

	if listing.IsTableRefresh(r, "tickets-table") {
		templates.RenderSnippet(w, "tickets_table", data)
		return
	}
	templates.Render(w, r, "tickets_list", data)
}

// ServeAPI handles GET /api/v1/tickets.
func (h *Handler) ServeAPI(w http.ResponseWriter, r *http.Request) {
	_, res, ok := h.load(w, r)
	if !ok {
		return
	}
	listing.WriteJSON(w, listing.NewResponse(r, res))
}
