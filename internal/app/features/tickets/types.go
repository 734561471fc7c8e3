// internal/app/features/tickets/types.go
package tickets

import (
	"html/template"
	"time"

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
	Priority       listing.Select
	Category       listing.Select
	From           string
	To             string
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
	Subject   string
	Requester string
	Role      string
	Category  string
	Priority  string
	Status    string
	Opened    string
	Updated   string
	Attention bool
}

func toRows(tickets []models.SupportTicket, attention func(models.SupportTicket) bool, now time.Time) []rowVM {
	out := make([]rowVM, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, rowVM{
			ID:        t.ID.Hex(),
			Reference: t.Reference,
			Subject:   t.Subject,
			Requester: t.Requester,
			Role:      listing.Label(t.RequesterRole),
			Category:  listing.Label(t.Category),
			Priority:  t.Priority,
			Status:    t.Status,
			Opened:    format.Date(t.CreatedAt),
			Updated:   format.Ago(t.UpdatedAt, now),
			Attention: attention(t),
		})
	}
	return out
}

func cards(s pipeline.Stats) []listing.Card {
	return []listing.Card{
		{Label: "Tickets", Value: format.Count(s.Int(listviews.TicketTotal))},
		{Label: "Open", Value: format.Count(s.Int(listviews.TicketOpen))},
		{Label: "Resolved", Value: format.Percent(s.Get(listviews.TicketResolvedRate))},
		{Label: "Avg. resolution", Value: format.Decimal(s.Get(listviews.TicketAvgResolution)) + " h"},
		{Label: "Needs attention", Value: format.Count(s.Int(listviews.TicketNeedsAttention))},
	}
}
