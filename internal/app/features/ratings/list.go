// internal/app/features/ratings/list.go
package ratings

import (
	"context"
	"net/http"
	"strconv"

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

var (
	scores        = []string{"1", "2", "3", "4", "5"}
	reviewerRoles = []string{models.RoleOwner, models.RoleBroker, models.RoleTenant, models.RoleRunner}
)

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (listviews.RatingQuery, pipeline.Result[models.Rating], bool) {
	q := listviews.RatingQueryFrom(r.URL.Query())
	scope, ok := authz.ScopeFor(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "rating list without session", "Please sign in to continue.", "/login")
		return q, pipeline.Result[models.Rating]{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := listing.Run(ctx, h.Deps, "ratings", h.store.List, scope, listviews.RatingView(q, h.ViewOptions()))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list ratings failed", err, "A database error occurred.", "/dashboard")
		return q, res, false
	}
	return q, res, true
}

// ServeList renders GET /ratings.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q, res, ok := h.load(w, r)
	if !ok {
		return
	}

	selectedScores := make([]string, 0, len(q.Score))
	for _, s := range q.Score {
		selectedScores = append(selectedScores, strconv.Itoa(s))
	}

	rows, page := paging.Window(res.Rows, q.Page, paging.PageSize)
	sortName, sortDir := listviews.RatingSort(q)
	data := listData{
		BaseVM:        viewdata.NewBaseVM(r, "Ratings", "/dashboard"),
		Q:             q.Search,
		Score:         listing.NewSelect("score", scores, selectedScores),
		ReviewerRole:  listing.NewSelect("reviewer_role", reviewerRoles, q.ReviewerRole),
		MinScore:      listing.Bound(q.MinScore),
		MaxScore:      listing.Bound(q.MaxScore),
		Sorts:         listing.NewSortControls(listviews.RatingSortFields(), sortName, sortDir),
		Portfolio:     cards(res.Portfolio),
		Results:       cards(res.Results),
		Rows:          toRows(rows),
		Pager:         listing.NewPager(r, page),
		Matched:       res.Matched,
		Total:         res.Total,
		FiltersActive: res.FiltersActive,
		Empty:         res.Empty(),
		ResetURL:      r.URL.Path,
		ExportHref:    listing.ExportHref(r, "ratings"),
	}

	if listing.IsTableRefresh(r, "ratings-table") {
		templates.RenderSnippet(w, "ratings_table", data)
		return
	}
	templates.Render(w, r, "ratings_list", data)
}

// ServeAPI handles GET /api/v1/ratings.
func (h *Handler) ServeAPI(w http.ResponseWriter, r *http.Request) {
	_, res, ok := h.load(w, r)
	if !ok {
		return
	}
	listing.WriteJSON(w, listing.NewResponse(r, res))
}
