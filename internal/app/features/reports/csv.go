// internal/app/features/reports/csv.go
package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rent360/rent360/internal/app/listviews"
	"github.com/rent360/rent360/internal/app/system/authz"
	"github.com/rent360/rent360/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeCSV handles GET /reports/{entity}.csv. It applies the same filters
// and sort as the list page whose query string it receives and streams
// every matching row, not just one page.
func (h *Handler) ServeCSV(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	src, known := h.sources[entity]
	if !known {
		http.NotFound(w, r)
		return
	}

	scope, ok := authz.ScopeFor(r)
	if !ok || !src.allows(scope.Role) {
		h.ErrLog.LogForbidden(w, r, "report export denied", "You do not have access to this report.", "/reports")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var ds listviews.Dataset
	if err := src.load(ctx, scope, &ds); err != nil {
		h.ErrLog.LogServerError(w, r, "load report records failed", err, "A database error occurred.", "/reports")
		return
	}

	rep, err := listviews.BuildReport(ds, entity, r.URL.Query(), h.ViewOptions())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "build report failed", err, "The report could not be built.", "/reports")
		return
	}
	h.Metrics.ObserveList(entity, rep.Total, rep.Matched, rep.Filtered)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(csvFilename(r, entity))))

	// UTF-8 BOM so Excel treats it as Unicode
	_, _ = w.Write([]byte{0xEF, 0xBB, 0xBF})

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	_ = cw.Write(rep.Header)
	_ = cw.WriteAll(rep.Rows)
	if err := cw.Error(); err != nil {
		h.Log.Warn("CSV write failed", zap.String("entity", entity), zap.Error(err))
		return
	}

	h.Log.Info("report exported",
		zap.String("entity", entity),
		zap.String("role", scope.Role),
		zap.Int("rows", len(rep.Rows)))
}

// csvFilename returns the "filename" query value with a .csv suffix, or a
// timestamped default.
func csvFilename(r *http.Request, entity string) string {
	filename := strings.TrimSpace(r.URL.Query().Get("filename"))
	if filename == "" {
		filename = entity + "_" + time.Now().UTC().Format("20060102_150405") + ".csv"
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		filename += ".csv"
	}
	return filename
}
