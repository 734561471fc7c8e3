// internal/app/features/properties/list.go
package properties

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

type loaded struct {
	q      listviews.PropertyQuery
	res    pipeline.Result[models.Property]
	cities []string
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (loaded, bool) {
	out := loaded{q: listviews.PropertyQueryFrom(r.URL.Query())}
	scope, ok := authz.ScopeFor(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "property list without session", "Please sign in to continue.", "/login")
		return out, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	records, err := h.store.List(ctx, scope)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list properties failed", err, "A database error occurred.", "/dashboard")
		return out, false
	}
	// City options come from everything the user may see, not the
	// filtered rows, so picking a city doesn't hide the others.
	out.cities = listing.Distinct(records, func(p models.Property) string { return p.City })
	out.res = listing.Apply(h.Deps, "properties", records, listviews.PropertyView(out.q, h.ViewOptions()))
	return out, true
}

// ServeList renders GET /properties.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	l, ok := h.load(w, r)
	if !ok {
		return
	}
	q, res := l.q, l.res

	rows, page := paging.Window(res.Rows, q.Page, paging.PageSize)
	sortName, sortDir := listviews.PropertySort(q)
	data := listData{
		BaseVM:        viewdata.NewBaseVM(r, "Properties", "/dashboard"),
		Q:             q.Search,
		Status:        listing.NewSelect("status", models.PropertyStatuses, q.Status),
		Type:          listing.NewSelect("type", models.PropertyTypes, q.Type),
		City:          listing.NewSelect("city", l.cities, q.City),
		MinPrice:      listing.Bound(q.MinPrice),
		MaxPrice:      listing.Bound(q.MaxPrice),
		MinBedrooms:   listing.Bound(q.MinBedrooms),
		MaxBedrooms:   listing.Bound(q.MaxBedrooms),
		Sorts:         listing.NewSortControls(listviews.PropertySortFields(), sortName, sortDir),
		Portfolio:     cards(res.Portfolio),
		Results:       cards(res.Results),
		Rows:          toRows(rows),
		Pager:         listing.NewPager(r, page),
		Matched:       res.Matched,
		Total:         res.Total,
		FiltersActive: res.FiltersActive,
		Empty:         res.Empty(),
		ResetURL:      r.URL.Path,
		ExportHref:    listing.ExportHref(r, "properties"),
	}

	if listing.IsTableRefresh(r, "properties-table") {
		templates.RenderSnippet(w, "properties_table", data)
		return
	}
	templates.Render(w, r, "properties_list", data)
}

// ServeAPI handles GET /api/v1/properties.
func (h *Handler) ServeAPI(w http.ResponseWriter, r *http.Request) {
	l, ok := h.load(w, r)
	if !ok {
		return
	}
	listing.WriteJSON(w, listing.NewResponse(r, l.res))
}
