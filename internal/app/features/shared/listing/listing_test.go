package listing

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/rent360/rent360/internal/app/system/authz"
	"github.com/rent360/rent360/internal/app/system/paging"
	"github.com/rent360/rent360/internal/app/system/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var numberAttr = pipeline.Field("n", func(n int) int { return n })

func TestRun(t *testing.T) {
	list := func(ctx context.Context, s authz.Scope) ([]int, error) { return []int{5, 1, 4, 2, 3}, nil }
	view := pipeline.View[int]{
		Criteria:  []pipeline.Criterion[int]{pipeline.Between(numberAttr, pipeline.Bound(2), nil)},
		Sort:      []pipeline.SortKey[int]{pipeline.ByNumber(numberAttr)},
		Portfolio: []pipeline.Aggregate[int]{pipeline.Sum("sum", numberAttr)},
		Results:   []pipeline.Aggregate[int]{pipeline.Sum("sum", numberAttr)},
	}

	res, err := Run(context.Background(), Deps{}, "numbers", list, authz.AdminScope, view)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4, 5}, res.Rows)
	assert.Equal(t, 15.0, res.Portfolio.Get("sum"))
	assert.Equal(t, 14.0, res.Results.Get("sum"))
}

func TestRun_ListError(t *testing.T) {
	boom := errors.New("boom")
	list := func(ctx context.Context, s authz.Scope) ([]int, error) { return nil, boom }

	_, err := Run(context.Background(), Deps{}, "numbers", list, authz.AdminScope, pipeline.View[int]{})
	assert.ErrorIs(t, err, boom)
}

func TestNewResponse_Windows(t *testing.T) {
	rows := make([]int, 30)
	res := pipeline.Result[int]{Rows: rows, Total: 40, Matched: 30}

	r := httptest.NewRequest("GET", "/api/v1/x?page=2&size=20", nil)
	resp := NewResponse(r, res)

	assert.Len(t, resp.Rows, 10)
	assert.Equal(t, 2, resp.Page.Number)
	assert.Equal(t, 40, resp.Total)
	assert.Equal(t, 30, resp.Matched)
}

func TestNewSelectAndLabel(t *testing.T) {
	sel := NewSelect("status", []string{"open", "in_progress"}, []string{"in_progress"})
	require.Len(t, sel.Choices, 2)
	assert.Equal(t, Choice{Value: "in_progress", Label: "In progress", Selected: true}, sel.Choices[1])
	assert.False(t, sel.Choices[0].Selected)
	assert.Equal(t, "Área", Label("área"))
}

func TestNewSortControls(t *testing.T) {
	sc := NewSortControls([]string{"name", "rent"}, "rent", pipeline.Desc)
	assert.True(t, sc.Desc)
	assert.True(t, sc.Fields[1].Selected)
	assert.False(t, sc.Fields[0].Selected)
}

func TestPagerKeepsFilters(t *testing.T) {
	r := httptest.NewRequest("GET", "/tenants?q=ana&page=2", nil)
	_, page := pagingWindow(60, 2)
	p := NewPager(r, page)

	assert.Equal(t, "/tenants?page=1&q=ana", string(p.PrevHref))
	assert.Equal(t, "/tenants?page=3&q=ana", string(p.NextHref))
}

func TestExportHref(t *testing.T) {
	r := httptest.NewRequest("GET", "/payments?status=pending&page=3", nil)
	assert.Equal(t, "/reports/payments.csv?status=pending", string(ExportHref(r, "payments")))

	r = httptest.NewRequest("GET", "/payments", nil)
	assert.Equal(t, "/reports/payments.csv", string(ExportHref(r, "payments")))
}

func TestIsTableRefresh(t *testing.T) {
	r := httptest.NewRequest("GET", "/tenants", nil)
	assert.False(t, IsTableRefresh(r, "tenants-table"))
	r.Header.Set("HX-Request", "true")
	r.Header.Set("HX-Target", "tenants-table")
	assert.True(t, IsTableRefresh(r, "tenants-table"))
}

func pagingWindow(n, page int) ([]int, paging.Page) {
	return paging.Window(make([]int, n), page, paging.PageSize)
}

func TestDistinct(t *testing.T) {
	got := Distinct([]string{"Valparaíso", "", "Santiago", "Valparaíso"}, func(s string) string { return s })
	assert.Equal(t, []string{"Santiago", "Valparaíso"}, got)
}

func TestBound(t *testing.T) {
	assert.Equal(t, "", Bound[float64](nil))
	assert.Equal(t, "450000", Bound(pipeline.Bound(450000.0)))
	assert.Equal(t, "2.5", Bound(pipeline.Bound(2.5)))
	assert.Equal(t, "3", Bound(pipeline.Bound(3)))
}
