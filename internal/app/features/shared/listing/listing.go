// Package listing holds the plumbing every list feature shares: loading a
// scoped collection, running its view, and shaping the result for HTML,
// JSON and HTMX table refreshes.
package listing

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	errorsfeature "github.com/rent360/rent360/internal/app/features/errors"
	"github.com/rent360/rent360/internal/app/listviews"
	"github.com/rent360/rent360/internal/app/system/authz"
	"github.com/rent360/rent360/internal/app/system/metrics"
	"github.com/rent360/rent360/internal/app/system/paging"
	"github.com/rent360/rent360/internal/app/system/pipeline"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Deps is what every list feature handler is built from.
type Deps struct {
	DB      *mongo.Database
	Log     *zap.Logger
	ErrLog  *errorsfeature.ErrorLogger
	Metrics *metrics.Metrics
	Views   listviews.Options
}

// ViewOptions returns the configured view options pinned to the current
// instant.
func (d Deps) ViewOptions() listviews.Options {
	o := d.Views
	o.Now = time.Now()
	return o
}

// Lister loads the records a scope may see.
type Lister[T any] func(ctx context.Context, s authz.Scope) ([]T, error)

// Run loads the scoped records and applies view to them. The result's
// Portfolio stats cover everything the user may see.
func Run[T any](ctx context.Context, d Deps, entity string, list Lister[T], s authz.Scope, view pipeline.View[T]) (pipeline.Result[T], error) {
	records, err := list(ctx, s)
	if err != nil {
		return pipeline.Result[T]{}, err
	}
	return Apply(d, entity, records, view), nil
}

// Apply runs view over records already loaded and records the run.
func Apply[T any](d Deps, entity string, records []T, view pipeline.View[T]) pipeline.Result[T] {
	res := view.Run(records)
	d.Metrics.ObserveList(entity, res.Total, res.Matched, res.FiltersActive)
	return res
}

// Distinct returns the sorted set of non-empty values of get over records,
// for select boxes whose options come from the data.
func Distinct[T any](records []T, get func(T) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range records {
		v := get(rec)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

/*─────────────────────────────────────────────────────────────────────────────*
| JSON                                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// Response is the body of every /api/v1 list endpoint.
type Response[T any] struct {
	Rows          []T            `json:"rows"`
	Total         int            `json:"total"`
	Matched       int            `json:"matched"`
	FiltersActive bool           `json:"filters_active"`
	Portfolio     pipeline.Stats `json:"portfolio"`
	Results       pipeline.Stats `json:"results"`
	Page          paging.Page    `json:"page"`
}

// NewResponse windows res to the requested page.
func NewResponse[T any](r *http.Request, res pipeline.Result[T]) Response[T] {
	rows, page := paging.Window(res.Rows, paging.ParsePage(r), paging.ParseSize(r))
	return Response[T]{
		Rows:          rows,
		Total:         res.Total,
		Matched:       res.Matched,
		FiltersActive: res.FiltersActive,
		Portfolio:     res.Portfolio,
		Results:       res.Results,
		Page:          page,
	}
}

// WriteJSON writes v as a 200 JSON response.
func WriteJSON(w http.ResponseWriter, v any) {
	WriteJSONStatus(w, http.StatusOK, v)
}

// WriteJSONStatus writes v as JSON with status.
func WriteJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

/*─────────────────────────────────────────────────────────────────────────────*
| HTML view models                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// Card is one stat card.
type Card struct {
	Label string
	Value string
	Hint  string
}

// Choice is one option of a select box.
type Choice struct {
	Value    string
	Label    string
	Selected bool
}

// Select is a named multi-select.
type Select struct {
	Name    string
	Choices []Choice
}

// NewSelect builds a multi-select over values with selected preselected.
func NewSelect(name string, values, selected []string) Select {
	chosen := make(map[string]bool, len(selected))
	for _, s := range selected {
		chosen[s] = true
	}
	out := Select{Name: name, Choices: make([]Choice, 0, len(values))}
	for _, v := range values {
		out.Choices = append(out.Choices, Choice{Value: v, Label: Label(v), Selected: chosen[v]})
	}
	return out
}

// SortControls backs the sort field and direction pickers.
type SortControls struct {
	Fields []Choice
	Desc   bool
}

// NewSortControls marks current as chosen. current and dir are the field
// and direction the view applied.
func NewSortControls(fields []string, current string, dir pipeline.Direction) SortControls {
	sc := SortControls{Desc: dir == pipeline.Desc}
	for _, f := range fields {
		sc.Fields = append(sc.Fields, Choice{Value: f, Label: Label(f), Selected: f == current})
	}
	return sc
}

// Pager is a paging.Page plus links to its neighbours that keep the
// current filters.
type Pager struct {
	paging.Page
	PrevHref template.URL
	NextHref template.URL
}

// NewPager builds the pager links for r.
func NewPager(r *http.Request, p paging.Page) Pager {
	return Pager{
		Page:     p,
		PrevHref: pageHref(r, p.PrevPage),
		NextHref: pageHref(r, p.NextPage),
	}
}

func pageHref(r *http.Request, n int) template.URL {
	q := url.Values{}
	for k, v := range r.URL.Query() {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(n))
	return template.URL(r.URL.Path + "?" + q.Encode())
}

// Label turns an enum value such as "in_progress" into "In progress".
func Label(v string) string {
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "_", " ")
	r, size := utf8.DecodeRuneInString(v)
	return string(unicode.ToUpper(r)) + v[size:]
}

// IsTableRefresh reports whether r is an HTMX request targeting the table
// wrapper with id target.
func IsTableRefresh(r *http.Request, target string) bool {
	return r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == target
}

// ExportHref is the CSV report link carrying the current filters.
func ExportHref(r *http.Request, entity string) template.URL {
	q := r.URL.Query()
	q.Del("page")
	href := "/reports/" + entity + ".csv"
	if enc := q.Encode(); enc != "" {
		href += "?" + enc
	}
	return template.URL(href)
}

// Bound renders an optional range bound for a form input.
func Bound[N int | float64](v *N) string {
	if v == nil {
		return ""
	}
	switch n := any(*v).(type) {
	case int:
		return strconv.Itoa(n)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

// DateInput renders a date bound for an <input type="date">.
func DateInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(listviews.DateLayout)
}
