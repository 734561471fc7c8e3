package listviews

import (
	"time"

	"github.com/rent360/rent360/internal/app/system/pipeline"
	"github.com/rent360/rent360/internal/domain/models"
)

// Rating stat names.
const (
	RatingCount        = "count"
	RatingAverage      = "average"
	RatingPositiveRate = "positive_rate"
)

// RatingQuery is the rating list's filter panel.
type RatingQuery struct {
	Common
	Score        []int
	ReviewerRole []string
	MinScore     *int
	MaxScore     *int
}

var (
	ratingProperty = pipeline.Field("property", func(r models.Rating) string { return r.PropertyTitle })
	ratingReviewer = pipeline.Field("reviewer", func(r models.Rating) string { return r.ReviewerName })
	ratingComment  = pipeline.Optional("comment", func(r models.Rating) (string, bool) { return r.Comment, r.Comment != "" })
	ratingRole     = pipeline.Field("reviewer_role", func(r models.Rating) string { return r.ReviewerRole })
	ratingScore    = pipeline.Field("score", func(r models.Rating) int { return r.Score })
	ratingCreated  = pipeline.Date("created", func(r models.Rating) *time.Time { return &r.CreatedAt })
)

var ratingSortOrder = []string{"created", "score"}

func ratingSorts(Options) map[string]pipeline.SortKey[models.Rating] {
	return map[string]pipeline.SortKey[models.Rating]{
		"created": pipeline.ByTime(ratingCreated),
		"score":   pipeline.ByNumber(ratingScore),
	}
}

// RatingSortFields lists the rating sort options.
func RatingSortFields() []string { return sortFields(ratingSortOrder, ratingSorts(DefaultOptions())) }

var ratingDefaultSort = sortDefault{"created", pipeline.Desc}

// RatingSort returns the field and direction q sorts by.
func RatingSort(q RatingQuery) (string, pipeline.Direction) {
	return ratingDefaultSort.resolve(q.Common, RatingSortFields())
}

func ratingStats() []pipeline.Aggregate[models.Rating] {
	return []pipeline.Aggregate[models.Rating]{
		pipeline.Count[models.Rating](RatingCount, nil),
		pipeline.Mean(RatingAverage, ratingScore),
		pipeline.Percentage(RatingPositiveRate, func(r models.Rating) bool { return r.Score >= models.PositiveScore }),
	}
}

// RatingView builds the rating list view. The default order is newest first.
func RatingView(q RatingQuery, o Options) pipeline.View[models.Rating] {
	name, dir := RatingSort(q)
	stats := ratingStats()
	return pipeline.View[models.Rating]{
		Criteria: []pipeline.Criterion[models.Rating]{
			pipeline.Text(q.Search, ratingProperty, ratingReviewer, ratingComment),
			pipeline.OneOf(ratingScore, q.Score...),
			pipeline.Selected(ratingRole, q.ReviewerRole...),
			pipeline.Between(ratingScore, q.MinScore, q.MaxScore),
		},
		Sort:      sortBy(ratingSorts(o), name, dir),
		Portfolio: stats,
		Results:   stats,
	}
}
