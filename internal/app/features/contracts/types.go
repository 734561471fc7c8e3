// internal/app/features/contracts/types.go
package contracts

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

	Q         string
	Status    listing.Select
	MinRent   string
	MaxRent   string
	StartFrom string
	StartTo   string
	Sorts     listing.SortControls

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
	ID       string
	Number   string
	Property string
	Tenant   string
	Owner    string
	Status   string
	Rent     string
	Deposit  string
	Start    string
	End      string
	Signed   string
}

func toRows(contracts []models.Contract) []rowVM {
	out := make([]rowVM, 0, len(contracts))
	for _, c := range contracts {
		out = append(out, rowVM{
			ID:       c.ID.Hex(),
			Number:   c.Number,
			Property: c.PropertyTitle,
			Tenant:   c.TenantName,
			Owner:    c.OwnerName,
			Status:   c.Status,
			Rent:     format.Currency(c.MonthlyRent),
			Deposit:  format.Currency(c.Deposit),
			Start:    format.Date(c.StartDate),
			End:      format.Date(c.EndDate),
			Signed:   format.DatePtr(c.SignedAt),
		})
	}
	return out
}

func cards(s pipeline.Stats) []listing.Card {
	return []listing.Card{
		{Label: "Contracts", Value: format.Count(s.Int(listviews.ContractTotal))},
		{Label: "Active", Value: format.Count(s.Int(listviews.ContractActive))},
		{Label: "Completed", Value: format.Count(s.Int(listviews.ContractCompleted))},
		{Label: "Completion rate", Value: format.Percent(s.Get(listviews.ContractCompletionRate))},
		{Label: "Active rent", Value: format.Currency(s.Get(listviews.ContractActiveRent)), Hint: "monthly, active contracts"},
	}
}
