// internal/app/features/tenants/types.go
package tenants

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

	// Filter panel
	Q             string
	PaymentStatus listing.Select
	MinRent       string
	MaxRent       string
	Sorts         listing.SortControls

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
	ID            string
	Name          string
	Email         string
	Property      string
	PaymentStatus string
	Rent          string
	LeaseEnd      string
	Rating        string
}

func toRows(tenants []models.Tenant) []rowVM {
	out := make([]rowVM, 0, len(tenants))
	for _, t := range tenants {
		row := rowVM{
			ID:            t.ID.Hex(),
			Name:          t.Name,
			Email:         t.Email,
			Property:      t.PropertyTitle,
			PaymentStatus: t.PaymentStatus,
			Rent:          format.Currency(t.MonthlyRent),
			LeaseEnd:      format.DatePtr(t.LeaseEnd),
			Rating:        "n/a",
		}
		if t.Rating != nil {
			row.Rating = format.Decimal(*t.Rating)
		}
		out = append(out, row)
	}
	return out
}

func cards(s pipeline.Stats) []listing.Card {
	return []listing.Card{
		{Label: "Tenants", Value: format.Count(s.Int(listviews.TenantTotal))},
		{Label: "Current", Value: format.Count(s.Int(listviews.TenantCurrent))},
		{Label: "Late", Value: format.Count(s.Int(listviews.TenantLate))},
		{Label: "Overdue", Value: format.Count(s.Int(listviews.TenantOverdue))},
		{Label: "On time", Value: format.Percent(s.Get(listviews.TenantOnTimeRate))},
		{Label: "Monthly rent", Value: format.Currency(s.Get(listviews.TenantMonthlyRent))},
		{Label: "Average rating", Value: format.Decimal(s.Get(listviews.TenantAvgRating))},
	}
}
