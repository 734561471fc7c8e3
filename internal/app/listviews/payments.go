package listviews

import (
	"time"

	"github.com/rent360/rent360/internal/app/system/pipeline"
	"github.com/rent360/rent360/internal/domain/models"
)

// Payment stat names.
const (
	PaymentTotal          = "total"
	PaymentCollected      = "collected"
	PaymentPendingAmount  = "pending_amount"
	PaymentOverdue        = "overdue"
	PaymentCollectionRate = "collection_rate"
	PaymentNeedsAttention = "needs_attention"
)

// PaymentQuery is the payment list's filter panel.
type PaymentQuery struct {
	Common
	Status         []string
	Method         []string
	MinAmount      *float64
	MaxAmount      *float64
	DueFrom        time.Time
	DueTo          time.Time
	NeedsAttention bool
}

var (
	paymentTenant    = pipeline.Field("tenant", func(p models.Payment) string { return p.TenantName })
	paymentProperty  = pipeline.Field("property", func(p models.Payment) string { return p.PropertyTitle })
	paymentReference = pipeline.Field("reference", func(p models.Payment) string { return p.Reference })
	paymentStatus    = pipeline.Field("status", func(p models.Payment) string { return p.Status })
	paymentMethod    = pipeline.Optional("method", func(p models.Payment) (string, bool) { return p.Method, p.Method != "" })
	paymentAmount    = pipeline.Field("amount", func(p models.Payment) float64 { return p.Amount })
	paymentDue       = pipeline.Date("due_date", func(p models.Payment) *time.Time { return &p.DueDate })
)

var paymentSortOrder = []string{"due", "amount", "tenant"}

func paymentSorts(o Options) map[string]pipeline.SortKey[models.Payment] {
	return map[string]pipeline.SortKey[models.Payment]{
		"due":    pipeline.ByTime(paymentDue),
		"amount": pipeline.ByNumber(paymentAmount),
		"tenant": pipeline.ByString(paymentTenant, o.Locale),
	}
}

// PaymentSortFields lists the payment sort options.
func PaymentSortFields() []string { return sortFields(paymentSortOrder, paymentSorts(DefaultOptions())) }

var paymentDefaultSort = sortDefault{"due", pipeline.Asc}

// PaymentSort returns the field and direction q sorts by.
func PaymentSort(q PaymentQuery) (string, pipeline.Direction) {
	return paymentDefaultSort.resolve(q.Common, PaymentSortFields())
}

// PaymentAttention flags unpaid installments whose due date is further back
// than the configured threshold.
func PaymentAttention(o Options) func(models.Payment) bool {
	return pipeline.And(
		func(p models.Payment) bool { return p.Status != models.PaymentPaid },
		pipeline.StaleSince(paymentDue, o.Now, o.PaymentAttention),
	)
}

func paymentStats(o Options) []pipeline.Aggregate[models.Payment] {
	isPaid := func(p models.Payment) bool { return p.Status == models.PaymentPaid }
	return []pipeline.Aggregate[models.Payment]{
		pipeline.Count[models.Payment](PaymentTotal, nil),
		pipeline.Sum(PaymentCollected, paymentAmount, isPaid),
		pipeline.Sum(PaymentPendingAmount, paymentAmount, func(p models.Payment) bool { return p.Status == models.PaymentPending }),
		pipeline.Count(PaymentOverdue, func(p models.Payment) bool { return p.Status == models.PaymentStatusOverdue }),
		pipeline.Percentage(PaymentCollectionRate, isPaid),
		pipeline.Count(PaymentNeedsAttention, PaymentAttention(o)),
	}
}

// PaymentView builds the payment list view.
func PaymentView(q PaymentQuery, o Options) pipeline.View[models.Payment] {
	name, dir := PaymentSort(q)
	stats := paymentStats(o)
	return pipeline.View[models.Payment]{
		Criteria: []pipeline.Criterion[models.Payment]{
			pipeline.Text(q.Search, paymentTenant, paymentProperty, paymentReference),
			pipeline.Selected(paymentStatus, q.Status...),
			pipeline.Selected(paymentMethod, q.Method...),
			pipeline.Between(paymentAmount, q.MinAmount, q.MaxAmount),
			pipeline.DateBetween(paymentDue, q.DueFrom, q.DueTo),
			pipeline.When(q.NeedsAttention, pipeline.Where(PaymentAttention(o))),
		},
		Sort:      sortBy(paymentSorts(o), name, dir),
		Portfolio: stats,
		Results:   stats,
	}
}
