package listviews

import (
	"time"

	"github.com/rent360/rent360/internal/app/system/pipeline"
	"github.com/rent360/rent360/internal/domain/models"
)

// Tenant stat names.
const (
	TenantTotal       = "total"
	TenantCurrent     = "current"
	TenantLate        = "late"
	TenantOverdue     = "overdue"
	TenantOnTimeRate  = "on_time_rate"
	TenantMonthlyRent = "monthly_rent"
	TenantAvgRating   = "avg_rating"
)

// TenantQuery is the tenant list's filter panel.
type TenantQuery struct {
	Common
	PaymentStatus []string
	MinRent       *float64
	MaxRent       *float64
}

var (
	tenantName     = pipeline.Field("name", func(t models.Tenant) string { return t.Name })
	tenantEmail    = pipeline.Field("email", func(t models.Tenant) string { return t.Email })
	tenantProperty = pipeline.Field("property", func(t models.Tenant) string { return t.PropertyTitle })
	tenantPayment  = pipeline.Field("payment_status", func(t models.Tenant) string { return t.PaymentStatus })
	tenantRent     = pipeline.Field("monthly_rent", func(t models.Tenant) float64 { return t.MonthlyRent })
	tenantLeaseEnd = pipeline.Date("lease_end", func(t models.Tenant) *time.Time { return t.LeaseEnd })
	tenantRating   = pipeline.Optional("rating", func(t models.Tenant) (float64, bool) {
		if t.Rating == nil {
			return 0, false
		}
		return *t.Rating, true
	})
)

var tenantSortOrder = []string{"name", "rent", "lease_end", "rating"}

func tenantSorts(o Options) map[string]pipeline.SortKey[models.Tenant] {
	return map[string]pipeline.SortKey[models.Tenant]{
		"name":      pipeline.ByString(tenantName, o.Locale),
		"rent":      pipeline.ByNumber(tenantRent),
		"lease_end": pipeline.ByTime(tenantLeaseEnd),
		"rating":    pipeline.ByNumber(tenantRating),
	}
}

// TenantSortFields lists the tenant sort options.
func TenantSortFields() []string { return sortFields(tenantSortOrder, tenantSorts(DefaultOptions())) }

var tenantDefaultSort = sortDefault{"name", pipeline.Asc}

// TenantSort returns the field and direction q sorts by.
func TenantSort(q TenantQuery) (string, pipeline.Direction) {
	return tenantDefaultSort.resolve(q.Common, TenantSortFields())
}

func tenantStats() []pipeline.Aggregate[models.Tenant] {
	isCurrent := func(t models.Tenant) bool { return t.PaymentStatus == models.PaymentCurrent }
	return []pipeline.Aggregate[models.Tenant]{
		pipeline.Count[models.Tenant](TenantTotal, nil),
		pipeline.Count(TenantCurrent, isCurrent),
		pipeline.Count(TenantLate, func(t models.Tenant) bool { return t.PaymentStatus == models.PaymentLate }),
		pipeline.Count(TenantOverdue, func(t models.Tenant) bool { return t.PaymentStatus == models.PaymentOverdue }),
		pipeline.Percentage(TenantOnTimeRate, isCurrent),
		pipeline.Sum(TenantMonthlyRent, tenantRent),
		pipeline.Mean(TenantAvgRating, tenantRating),
	}
}

// TenantView builds the tenant list view.
func TenantView(q TenantQuery, o Options) pipeline.View[models.Tenant] {
	name, dir := TenantSort(q)
	stats := tenantStats()
	return pipeline.View[models.Tenant]{
		Criteria: []pipeline.Criterion[models.Tenant]{
			pipeline.Text(q.Search, tenantName, tenantEmail, tenantProperty),
			pipeline.Selected(tenantPayment, q.PaymentStatus...),
			pipeline.Between(tenantRent, q.MinRent, q.MaxRent),
		},
		Sort:      sortBy(tenantSorts(o), name, dir),
		Portfolio: stats,
		Results:   stats,
	}
}
