package listviews

import (
	"time"

	"github.com/rent360/rent360/internal/app/system/pipeline"
	"github.com/rent360/rent360/internal/domain/models"
)

// Contract stat names.
const (
	ContractTotal          = "total"
	ContractActive         = "active"
	ContractCompleted      = "completed"
	ContractCompletionRate = "completion_rate"
	ContractActiveRent     = "active_rent"
)

// ContractQuery is the contract list's filter panel.
type ContractQuery struct {
	Common
	Status    []string
	MinRent   *float64
	MaxRent   *float64
	StartFrom time.Time
	StartTo   time.Time
}

var (
	contractNumber   = pipeline.Field("number", func(c models.Contract) string { return c.Number })
	contractProperty = pipeline.Field("property", func(c models.Contract) string { return c.PropertyTitle })
	contractTenant   = pipeline.Field("tenant", func(c models.Contract) string { return c.TenantName })
	contractOwner    = pipeline.Field("owner", func(c models.Contract) string { return c.OwnerName })
	contractStatus   = pipeline.Field("status", func(c models.Contract) string { return c.Status })
	contractRent     = pipeline.Field("monthly_rent", func(c models.Contract) float64 { return c.MonthlyRent })
	contractStart    = pipeline.Date("start_date", func(c models.Contract) *time.Time { return &c.StartDate })
	contractEnd      = pipeline.Date("end_date", func(c models.Contract) *time.Time { return &c.EndDate })
)

var contractSortOrder = []string{"start", "end", "rent", "number"}

func contractSorts(o Options) map[string]pipeline.SortKey[models.Contract] {
	return map[string]pipeline.SortKey[models.Contract]{
		"start":  pipeline.ByTime(contractStart),
		"end":    pipeline.ByTime(contractEnd),
		"rent":   pipeline.ByNumber(contractRent),
		"number": pipeline.ByString(contractNumber, o.Locale),
	}
}

// ContractSortFields lists the contract sort options.
func ContractSortFields() []string {
	return sortFields(contractSortOrder, contractSorts(DefaultOptions()))
}

var contractDefaultSort = sortDefault{"start", pipeline.Asc}

// ContractSort returns the field and direction q sorts by.
func ContractSort(q ContractQuery) (string, pipeline.Direction) {
	return contractDefaultSort.resolve(q.Common, ContractSortFields())
}

func contractStats() []pipeline.Aggregate[models.Contract] {
	isActive := func(c models.Contract) bool { return c.Status == models.ContractActive }
	isCompleted := func(c models.Contract) bool { return c.Status == models.ContractCompleted }
	return []pipeline.Aggregate[models.Contract]{
		pipeline.Count[models.Contract](ContractTotal, nil),
		pipeline.Count(ContractActive, isActive),
		pipeline.Count(ContractCompleted, isCompleted),
		pipeline.Percentage(ContractCompletionRate, isCompleted),
		pipeline.Sum(ContractActiveRent, contractRent, isActive),
	}
}

// ContractView builds the contract list view.
func ContractView(q ContractQuery, o Options) pipeline.View[models.Contract] {
	name, dir := ContractSort(q)
	stats := contractStats()
	return pipeline.View[models.Contract]{
		Criteria: []pipeline.Criterion[models.Contract]{
			pipeline.Text(q.Search, contractNumber, contractProperty, contractTenant, contractOwner),
			pipeline.Selected(contractStatus, q.Status...),
			pipeline.Between(contractRent, q.MinRent, q.MaxRent),
			pipeline.DateBetween(contractStart, q.StartFrom, q.StartTo),
		},
		Sort:      sortBy(contractSorts(o), name, dir),
		Portfolio: stats,
		Results:   stats,
	}
}
