// internal/app/features/properties/types.go
package properties

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

	Q           string
	Status      listing.Select
	Type        listing.Select
	City        listing.Select
	MinPrice    string
	MaxPrice    string
	MinBedrooms string
	MaxBedrooms string
	Sorts       listing.SortControls

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
	Title    string
	Address  string
	City     string
	Type     string
	Status   string
	Price    string
	Bedrooms int
	Area     string
	Owner    string
	Listed   string
}

func toRows(props []models.Property) []rowVM {
	out := make([]rowVM, 0, len(props))
	for _, p := range props {
		out = append(out, rowVM{
			ID:       p.ID.Hex(),
			Title:    p.Title,
			Address:  p.Address,
			City:     p.City,
			Type:     listing.Label(p.Type),
			Status:   p.Status,
			Price:    format.Currency(p.Price),
			Bedrooms: p.Bedrooms,
			Area:     format.Decimal(p.AreaM2) + " m²",
			Owner:    p.OwnerName,
			Listed:   format.Date(p.CreatedAt),
		})
	}
	return out
}

func cards(s pipeline.Stats) []listing.Card {
	return []listing.Card{
		{Label: "Properties", Value: format.Count(s.Int(listviews.PropertyTotal))},
		{Label: "Available", Value: format.Count(s.Int(listviews.PropertyAvailable))},
		{Label: "Rented", Value: format.Count(s.Int(listviews.PropertyRented))},
		{Label: "Occupancy", Value: format.Percent(s.Get(listviews.PropertyOccupancyRate))},
		{Label: "Average price", Value: format.Currency(s.Get(listviews.PropertyAvgPrice))},
		{Label: "Portfolio value", Value: format.Currency(s.Get(listviews.PropertyPortfolioValue)), Hint: "sum of monthly prices"},
	}
}
