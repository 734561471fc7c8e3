// internal/app/features/payments/types.go
package payments

import (
	"html/template"

	"github.com/rent360/rent360/internal/app/features/shared/listing"
	"github.com/rent360/rent360/internal/app/listviews"
	"github.com/rent360/rent360/internal/app/system/format"
	"github.com/rent360/rent360/internal/app/system/pipeline"
	"github.com/rent360/rent360/internal/app/system/viewdata"
	"github.com/rent360/rent360/internal/domain/models"
)

type listData struct {
	viewdata.BaseVM

	Q              string
	Status         listing.Select
	Method         listing.Select
	MinAmount      string
	MaxAmount      string
	DueFrom        string
	DueTo          string
	NeedsAttention bool
	Sorts          listing.SortControls

	Portfolio []listing.Card
	Results   []listing.Card

	Rows          []rowVM
	Pager         listing.Pager
	Matched       int
	Total         int
	FiltersActive bool
	Empty         bool
	ResetURL      string
	ExportHref    template.URL
}

type rowVM struct {
	ID        string
	Reference string
	Tenant    string
	Property  string
	Amount    string
	Status    string
	Method    string
	Due       string
	Paid      string
	Attention bool
}

func toRows(payments []models.Payment, attention func(models.Payment) bool) []rowVM {
	out := make([]rowVM, 0, len(payments))
	for _, p := range payments {
		method := listing.Label(p.Method)
		if method == "" {
			method = "-"
		}
		out = append(out, rowVM{
			ID:        p.ID.Hex(),
			Reference: p.Reference,
			Tenant:    p.TenantName,
			Property:  p.PropertyTitle,
			Amount:    format.Currency(p.Amount),
			Status:    p.Status,
			Method:    method,
			Due:       format.Date(p.DueDate),
			Paid:      format.DatePtr(p.PaidAt),
			Attention: attention(p),
		})
	}
	return out
}

func cards(s pipeline.Stats) []listing.Card {
	return []listing.Card{
		{Label: "Installments", Value: format.Count(s.Int(listviews.PaymentTotal))},
		{Label: "Collected", Value: format.Currency(s.Get(listviews.PaymentCollected))},
		{Label: "Pending", Value: format.Currency(s.Get(listviews.PaymentPendingAmount))},
		{Label: "Overdue", Value: format.Count(s.Int(listviews.PaymentOverdue))},
		{Label: "Collection rate", Value: format.Percent(s.Get(listviews.PaymentCollectionRate))},
		{Label: "Needs attention", Value: format.Count(s.Int(listviews.PaymentNeedsAttention)), Hint: "unpaid past the grace period"},
	}
}
