// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	metricsstore "github.com/rent360/rent360/internal/app/store/metrics"
	"github.com/rent360/rent360/internal/app/system/authz"
	"github.com/rent360/rent360/internal/app/system/timeouts"
	"github.com/rent360/rent360/internal/app/system/viewdata"
	"github.com/rent360/rent360/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handler serves the role dashboards.
type Handler struct {
	listing.Deps
	panels []panelSpec
}

func NewHandler(d listing.Deps) *Handler {
	return &Handler{Deps: d, panels: newPanels(d.DB)}
}

// summary is one dashboard's content, shared by the page and the JSON twin.
type summary struct {
	Role     string               `json:"role"`
	Platform *metricsstore.Counts `json:"platform,omitempty"`
	Panels   []panel              `json:"panels"`
}

// load computes every panel role may see, concurrently. Admins also get the
// platform headcount.
func (h *Handler) load(ctx context.Context, s authz.Scope) (summary, error) {
	opts := h.ViewOptions()
	specs := visiblePanels(h.panels, s.Role)

	out := summary{Role: s.Role, Panels: make([]panel, len(specs))}
	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		g.Go(func() error {
			p, err := spec.compute(gctx, s, opts)
			if err != nil {
				return err
			}
			out.Panels[i] = p
			return nil
		})
	}
	if s.Role == models.RoleAdmin {
		g.Go(func() error {
			counts := metricsstore.FetchPlatformCounts(gctx, h.DB)
			out.Platform = &counts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary{}, err
	}
	return out, nil
}

// ServeDashboard renders GET /dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	scope, ok := authz.ScopeFor(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sum, err := h.load(ctx, scope)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard load failed", err, "A database error occurred.", "/")
		return
	}

	data := pageData{
		BaseVM:   viewdata.NewBaseVM(r, dashboardTitle(scope.Role), "/"),
		Platform: platformCards(sum.Platform),
		Panels:   sum.Panels,
	}
	h.Log.Debug("dashboard served", zap.String("role", scope.Role), zap.Int("panels", len(sum.Panels)))
	templates.Render(w, r, "dashboard", data)
}

// ServeAPI handles GET /api/v1/dashboard.
func (h *Handler) ServeAPI(w http.ResponseWriter, r *http.Request) {
	scope, ok := authz.ScopeFor(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "dashboard without session", "Please sign in to continue.", "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sum, err := h.load(ctx, scope)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard load failed", err, "A database error occurred.", "/")
		return
	}
	listing.WriteJSON(w, sum)
}
