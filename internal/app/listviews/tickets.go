package listviews

import (
	"time"

	"github.com/rent360/rent360/internal/app/system/pipeline"
	"github.com/rent360/rent360/internal/domain/models"
)

// Ticket stat names.
const (
	TicketTotal          = "total"
	TicketOpen           = "open"
	TicketResolvedRate   = "resolved_rate"
	TicketAvgResolution  = "avg_resolution_hours"
	TicketNeedsAttention = "needs_attention"
)

// TicketQuery is the support queue's filter panel.
type TicketQuery struct {
	Common
	Status         []string
	Priority       []string
	Category       []string
	CreatedFrom    time.Time
	CreatedTo      time.Time
	NeedsAttention bool
}

var (
	ticketSubject   = pipeline.Field("subject", func(t models.SupportTicket) string { return t.Subject })
	ticketRequester = pipeline.Field("requester", func(t models.SupportTicket) string { return t.Requester })
	ticketStatus    = pipeline.Field("status", func(t models.SupportTicket) string { return t.Status })
	ticketPriority  = pipeline.Field("priority", func(t models.SupportTicket) string { return t.Priority })
	ticketCategory  = pipeline.Field("category", func(t models.SupportTicket) string { return t.Category })
	ticketCreated   = pipeline.Date("created", func(t models.SupportTicket) *time.Time { return &t.CreatedAt })
	ticketUpdated   = pipeline.Date("updated", func(t models.SupportTicket) *time.Time { return &t.UpdatedAt })

	ticketResolutionHours = pipeline.Optional("resolution_hours", func(t models.SupportTicket) (float64, bool) {
		if t.ResolvedAt == nil || t.CreatedAt.IsZero() {
			return 0, false
		}
		return hours(t.ResolvedAt.Sub(t.CreatedAt)), true
	})
)

var ticketSortOrder = []string{"priority", "created", "updated"}

func ticketSorts(Options) map[string]pipeline.SortKey[models.SupportTicket] {
	return map[string]pipeline.SortKey[models.SupportTicket]{
		"priority": pipeline.ByRank(ticketPriority, models.PrioritySeverity),
		"created":  pipeline.ByTime(ticketCreated),
		"updated":  pipeline.ByTime(ticketUpdated),
	}
}

// TicketSortFields lists the ticket sort options.
func TicketSortFields() []string { return sortFields(ticketSortOrder, ticketSorts(DefaultOptions())) }

var ticketDefaultSort = sortDefault{"priority", pipeline.Desc}

// TicketSort returns the field and direction q sorts by.
func TicketSort(q TicketQuery) (string, pipeline.Direction) {
	return ticketDefaultSort.resolve(q.Common, TicketSortFields())
}

func ticketIsOpen(t models.SupportTicket) bool { return t.IsOpen() }

// TicketAttention flags open tickets raised longer ago than the threshold.
func TicketAttention(o Options) func(models.SupportTicket) bool {
	return pipeline.And(ticketIsOpen, pipeline.StaleSince(ticketCreated, o.Now, o.TicketAttention))
}

func ticketStats(o Options) []pipeline.Aggregate[models.SupportTicket] {
	return []pipeline.Aggregate[models.SupportTicket]{
		pipeline.Count[models.SupportTicket](TicketTotal, nil),
		pipeline.Count(TicketOpen, ticketIsOpen),
		pipeline.Percentage(TicketResolvedRate, func(t models.SupportTicket) bool { return !t.IsOpen() }),
		pipeline.Mean(TicketAvgResolution, ticketResolutionHours),
		pipeline.Count(TicketNeedsAttention, TicketAttention(o)),
	}
}

// TicketView builds the support queue view. The default order is most
// severe first.
func TicketView(q TicketQuery, o Options) pipeline.View[models.SupportTicket] {
	name, dir := TicketSort(q)
	stats := ticketStats(o)
	return pipeline.View[models.SupportTicket]{
		Criteria: []pipeline.Criterion[models.SupportTicket]{
			pipeline.Text(q.Search, ticketSubject, ticketRequester),
			pipeline.Selected(ticketStatus, q.Status...),
			pipeline.Selected(ticketPriority, q.Priority...),
			pipeline.Selected(ticketCategory, q.Category...),
			pipeline.DateBetween(ticketCreated, q.CreatedFrom, q.CreatedTo),
			pipeline.When(q.NeedsAttention, pipeline.Where(TicketAttention(o))),
		},
		Sort:      sortBy(ticketSorts(o), name, dir),
		Portfolio: stats,
		Results:   stats,
	}
}
