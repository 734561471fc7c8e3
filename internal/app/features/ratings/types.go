// internal/app/features/ratings/types.go
package ratings

import (
	"html/template"
	"strings"

	"github.com/rent360/rent360/internal/app/features/shared/listing"
	"github.com/rent360/rent360/internal/app/listviews"
	"github.com/rent360/rent360/internal/app/system/format"
	"github.com/rent360/rent360/internal/app/system/htmlsanitize"
	"github.com/rent360/rent360/internal/app/system/pipeline"
	"github.com/rent360/rent360/internal/app/system/viewdata"
	"github.com/rent360/rent360/internal/domain/models"
)

type listData struct {
	viewdata.BaseVM

	Q            string
	Score        listing.Select
	ReviewerRole listing.Select
	MinScore     string
	MaxScore     string
	Sorts        listing.SortControls

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
	Property string
	Reviewer string
	Role     string
	Score    int
	Stars    string
	Comment  template.HTML
	Created  string
}

func toRows(ratings []models.Rating) []rowVM {
	out := make([]rowVM, 0, len(ratings))
	for _, rt := range ratings {
		score := min(max(rt.Score, 0), 5)
		out = append(out, rowVM{
			ID:       rt.ID.Hex(),
			Property: rt.PropertyTitle,
			Reviewer: rt.ReviewerName,
			Role:     listing.Label(rt.ReviewerRole),
			Score:    rt.Score,
			Stars:    strings.Repeat("★", score) + strings.Repeat("☆", 5-score),
			Comment:  htmlsanitize.PrepareForDisplay(rt.Comment),
			Created:  format.Date(rt.CreatedAt),
		})
	}
	return out
}

func cards(s pipeline.Stats) []listing.Card {
	return []listing.Card{
		{Label: "Reviews", Value: format.Count(s.Int(listviews.RatingCount))},
		{Label: "Average score", Value: format.Decimal(s.Get(listviews.RatingAverage))},
		{Label: "Positive", Value: format.Percent(s.Get(listviews.RatingPositiveRate)), Hint: "4 stars or more"},
	}
}
