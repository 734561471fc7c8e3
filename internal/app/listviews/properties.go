package listviews

import (
	"time"

	"github.com/rent360/rent360/internal/app/system/pipeline"
	"github.com/rent360/rent360/internal/domain/models"
)

// Property stat names.
const (
	PropertyTotal          = "total"
	PropertyAvailable      = "available"
	PropertyRented         = "rented"
	PropertyOccupancyRate  = "occupancy_rate"
	PropertyAvgPrice       = "avg_price"
	PropertyPortfolioValue = "portfolio_value"
)

// PropertyQuery is the property list's filter panel.
type PropertyQuery struct {
	Common
	Status      []string
	Type        []string
	City        []string
	MinPrice    *float64
	MaxPrice    *float64
	MinBedrooms *int
	MaxBedrooms *int
}

var (
	propertyTitle    = pipeline.Field("title", func(p models.Property) string { return p.Title })
	propertyAddress  = pipeline.Field("address", func(p models.Property) string { return p.Address })
	propertyCity     = pipeline.Field("city", func(p models.Property) string { return p.City })
	propertyStatus   = pipeline.Field("status", func(p models.Property) string { return p.Status })
	propertyType     = pipeline.Field("type", func(p models.Property) string { return p.Type })
	propertyPrice    = pipeline.Field("price", func(p models.Property) float64 { return p.Price })
	propertyBedrooms = pipeline.Field("bedrooms", func(p models.Property) int { return p.Bedrooms })
	propertyArea     = pipeline.Field("area_m2", func(p models.Property) float64 { return p.AreaM2 })
	propertyCreated  = pipeline.Date("created", func(p models.Property) *time.Time { return &p.CreatedAt })
)

var propertySortOrder = []string{"price", "title", "created", "area"}

func propertySorts(o Options) map[string]pipeline.SortKey[models.Property] {
	return map[string]pipeline.SortKey[models.Property]{
		"price":   pipeline.ByNumber(propertyPrice),
		"title":   pipeline.ByString(propertyTitle, o.Locale),
		"created": pipeline.ByTime(propertyCreated),
		"area":    pipeline.ByNumber(propertyArea),
	}
}

// PropertySortFields lists the property sort options.
func PropertySortFields() []string {
	return sortFields(propertySortOrder, propertySorts(DefaultOptions()))
}

var propertyDefaultSort = sortDefault{"created", pipeline.Asc}

// PropertySort returns the field and direction q sorts by.
func PropertySort(q PropertyQuery) (string, pipeline.Direction) {
	return propertyDefaultSort.resolve(q.Common, PropertySortFields())
}

func propertyStats() []pipeline.Aggregate[models.Property] {
	isRented := func(p models.Property) bool { return p.Status == models.PropertyRented }
	return []pipeline.Aggregate[models.Property]{
		pipeline.Count[models.Property](PropertyTotal, nil),
		pipeline.Count(PropertyAvailable, func(p models.Property) bool { return p.Status == models.PropertyAvailable }),
		pipeline.Count(PropertyRented, isRented),
		pipeline.Percentage(PropertyOccupancyRate, isRented),
		pipeline.Mean(PropertyAvgPrice, propertyPrice),
		pipeline.Sum(PropertyPortfolioValue, propertyPrice),
	}
}

// PropertyView builds the property list view.
func PropertyView(q PropertyQuery, o Options) pipeline.View[models.Property] {
	name, dir := PropertySort(q)
	stats := propertyStats()
	return pipeline.View[models.Property]{
		Criteria: []pipeline.Criterion[models.Property]{
			pipeline.Text(q.Search, propertyTitle, propertyAddress, propertyCity),
			pipeline.Selected(propertyStatus, q.Status...),
			pipeline.Selected(propertyType, q.Type...),
			pipeline.Selected(propertyCity, q.City...),
			pipeline.Between(propertyPrice, q.MinPrice, q.MaxPrice),
			pipeline.Between(propertyBedrooms, q.MinBedrooms, q.MaxBedrooms),
		},
		Sort:      sortBy(propertySorts(o), name, dir),
		Portfolio: stats,
		Results:   stats,
	}
}
