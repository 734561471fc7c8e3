package listviews

import (
	"time"

	"github.com/rent360/rent360/internal/app/system/pipeline"
	"github.com/rent360/rent360/internal/domain/models"
)

// Maintenance stat names.
const (
	MaintenanceTotal          = "total"
	MaintenanceOpen           = "open"
	MaintenanceUrgent         = "urgent"
	MaintenanceCompletionRate = "completion_rate"
	MaintenanceTotalCost      = "total_cost"
	MaintenanceAvgResolution  = "avg_resolution_days"
	MaintenanceNeedsAttention = "needs_attention"
)

// MaintenanceQuery is the maintenance list's filter panel.
type MaintenanceQuery struct {
	Common
	Status         []string
	Priority       []string
	Category       []string
	MinCost        *float64
	MaxCost        *float64
	CreatedFrom    time.Time
	CreatedTo      time.Time
	NeedsAttention bool
}

var (
	maintenanceTitle       = pipeline.Field("title", func(m models.MaintenanceRequest) string { return m.Title })
	maintenanceDescription = pipeline.Field("description", func(m models.MaintenanceRequest) string { return m.Description })
	maintenanceProperty    = pipeline.Field("property", func(m models.MaintenanceRequest) string { return m.PropertyTitle })
	maintenanceStatus      = pipeline.Field("status", func(m models.MaintenanceRequest) string { return m.Status })
	maintenancePriority    = pipeline.Field("priority", func(m models.MaintenanceRequest) string { return m.Priority })
	maintenanceCategory    = pipeline.Field("category", func(m models.MaintenanceRequest) string { return m.Category })
	maintenanceCreated     = pipeline.Date("created", func(m models.MaintenanceRequest) *time.Time { return &m.CreatedAt })

	// maintenanceCost is the actual cost once known, otherwise the estimate.
	maintenanceCost = pipeline.Field("cost", func(m models.MaintenanceRequest) float64 {
		if m.ActualCost != nil {
			return *m.ActualCost
		}
		return m.EstimatedCost
	})

	maintenanceResolutionDays = pipeline.Optional("resolution_days", func(m models.MaintenanceRequest) (float64, bool) {
		if m.ResolvedAt == nil || m.CreatedAt.IsZero() {
			return 0, false
		}
		return days(m.ResolvedAt.Sub(m.CreatedAt)), true
	})
)

var maintenanceSortOrder = []string{"priority", "created", "cost"}

func maintenanceSorts(Options) map[string]pipeline.SortKey[models.MaintenanceRequest] {
	return map[string]pipeline.SortKey[models.MaintenanceRequest]{
		"priority": pipeline.ByRank(maintenancePriority, models.PrioritySeverity),
		"created":  pipeline.ByTime(maintenanceCreated),
		"cost":     pipeline.ByNumber(maintenanceCost),
	}
}

// MaintenanceSortFields lists the maintenance sort options.
func MaintenanceSortFields() []string {
	return sortFields(maintenanceSortOrder, maintenanceSorts(DefaultOptions()))
}

var maintenanceDefaultSort = sortDefault{"priority", pipeline.Desc}

// MaintenanceSort returns the field and direction q sorts by.
func MaintenanceSort(q MaintenanceQuery) (string, pipeline.Direction) {
	return maintenanceDefaultSort.resolve(q.Common, MaintenanceSortFields())
}

func maintenanceIsOpen(m models.MaintenanceRequest) bool { return m.IsOpen() }

// MaintenanceAttention flags open requests older than the threshold.
func MaintenanceAttention(o Options) func(models.MaintenanceRequest) bool {
	return pipeline.And(maintenanceIsOpen, pipeline.StaleSince(maintenanceCreated, o.Now, o.MaintenanceAttention))
}

func maintenanceStats(o Options) []pipeline.Aggregate[models.MaintenanceRequest] {
	return []pipeline.Aggregate[models.MaintenanceRequest]{
		pipeline.Count[models.MaintenanceRequest](MaintenanceTotal, nil),
		pipeline.Count(MaintenanceOpen, maintenanceIsOpen),
		pipeline.Count(MaintenanceUrgent, func(m models.MaintenanceRequest) bool {
			return m.IsOpen() && m.Priority == models.PriorityUrgent
		}),
		pipeline.Percentage(MaintenanceCompletionRate, func(m models.MaintenanceRequest) bool {
			return m.Status == models.MaintenanceCompleted
		}),
		pipeline.Sum(MaintenanceTotalCost, maintenanceCost),
		pipeline.Mean(MaintenanceAvgResolution, maintenanceResolutionDays),
		pipeline.Count(MaintenanceNeedsAttention, MaintenanceAttention(o)),
	}
}

// MaintenanceView builds the maintenance list view. The default order is
// most severe first.
func MaintenanceView(q MaintenanceQuery, o Options) pipeline.View[models.MaintenanceRequest] {
	name, dir := MaintenanceSort(q)
	stats := maintenanceStats(o)
	return pipeline.View[models.MaintenanceRequest]{
		Criteria: []pipeline.Criterion[models.MaintenanceRequest]{
			pipeline.Text(q.Search, maintenanceTitle, maintenanceDescription, maintenanceProperty),
			pipeline.Selected(maintenanceStatus, q.Status...),
			pipeline.Selected(maintenancePriority, q.Priority...),
			pipeline.Selected(maintenanceCategory, q.Category...),
			pipeline.Between(maintenanceCost, q.MinCost, q.MaxCost),
			pipeline.DateBetween(maintenanceCreated, q.CreatedFrom, q.CreatedTo),
			pipeline.When(q.NeedsAttention, pipeline.Where(MaintenanceAttention(o))),
		},
		Sort:      sortBy(maintenanceSorts(o), name, dir),
		Portfolio: stats,
		Results:   stats,
	}
}
