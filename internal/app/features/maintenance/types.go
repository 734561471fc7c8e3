// internal/app/features/maintenance/types.go
package maintenance

import (
	"html/template"
	"time"

	"github.com/rent360/rent360/internal/app/features/shared/listing"
	"github.com/rent360/rent360/internal/app/listviews"
	"github.com/rent360/rent360/internal/app/system/format"
	"github.com/rent360/rent360/internal/app/system/formutil"
	"github.com/rent360/rent360/internal/app/system/pipeline"
	"github.com/rent360/rent360/internal/app/system/viewdata"
	"github.com/rent360/rent360/internal/domain/models"
)

type listData struct {
	viewdata.BaseVM

	Q              string
	Status         listing.Select
	Priority       listing.Select
	Category       listing.Select
	MinCost        string
	MaxCost        string
	From           string
	To             string
	NeedsAttention bool
	CanRequest     bool
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
	Title     string
	Property  string
	Requester string
	Runner    string
	Category  string
	Priority  string
	Status    string
	Cost      string
	Created   string
	Age       string
	Attention bool
}

func toRows(requests []models.MaintenanceRequest, attention func(models.MaintenanceRequest) bool, now time.Time) []rowVM {
	out := make([]rowVM, 0, len(requests))
	for _, m := range requests {
		cost := m.EstimatedCost
		if m.ActualCost != nil {
			cost = *m.ActualCost
		}
		runner := m.RunnerName
		if runner == "" {
			runner = "Unassigned"
		}
		out = append(out, rowVM{
			ID:        m.ID.Hex(),
			Reference: m.Reference,
			Title:     m.Title,
			Property:  m.PropertyTitle,
			Requester: m.RequestedBy,
			Runner:    runner,
			Category:  listing.Label(m.Category),
			Priority:  m.Priority,
			Status:    m.Status,
			Cost:      format.Currency(cost),
			Created:   format.Date(m.CreatedAt),
			Age:       format.Ago(m.CreatedAt, now),
			Attention: attention(m),
		})
	}
	return out
}

func cards(s pipeline.Stats) []listing.Card {
	return []listing.Card{
		{Label: "Requests", Value: format.Count(s.Int(listviews.MaintenanceTotal))},
		{Label: "Open", Value: format.Count(s.Int(listviews.MaintenanceOpen))},
		{Label: "Urgent", Value: format.Count(s.Int(listviews.MaintenanceUrgent)), Hint: "open and urgent"},
		{Label: "Completion rate", Value: format.Percent(s.Get(listviews.MaintenanceCompletionRate))},
		{Label: "Total cost", Value: format.Currency(s.Get(listviews.MaintenanceTotalCost))},
		{Label: "Avg. resolution", Value: format.Decimal(s.Get(listviews.MaintenanceAvgResolution)) + " days"},
		{Label: "Needs attention", Value: format.Count(s.Int(listviews.MaintenanceNeedsAttention))},
	}
}

type propertyOption struct {
	ID       string
	Title    string
	Selected bool
}

type newData struct {
	formutil.Base

	Properties  []propertyOption
	Categories  []listing.Choice
	Priorities  []listing.Choice
	Title       string
	Description string
	Cost        string
}
