package ratings_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	errorsfeature "github.com/rent360/rent360/internal/app/features/errors"
	"github.com/rent360/rent360/internal/app/features/ratings"
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	"github.com/rent360/rent360/internal/app/listviews"
	"github.com/rent360/rent360/internal/domain/models"
	"github.com/rent360/rent360/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type apiResponse struct {
	Rows      []models.Rating    `json:"rows"`
	Matched   int                `json:"matched"`
	Portfolio map[string]float64 `json:"portfolio"`
	Results   map[string]float64 `json:"results"`
}

func newTestHandler(t *testing.T) (*ratings.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := ratings.NewHandler(listing.Deps{
		DB:     db,
		Log:    logger,
		ErrLog: errorsfeature.NewErrorLogger(logger),
		Views:  listviews.DefaultOptions(),
	})
	return h, testutil.NewFixtures(t, db)
}

func seedRatings(t *testing.T, f *testutil.Fixtures, owner primitive.ObjectID, scores ...int) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	base := time.Now().UTC().Add(-time.Duration(len(scores)) * time.Hour)
	for i, s := range scores {
		f.Insert(ctx, "ratings", models.Rating{
			ID:            primitive.NewObjectID(),
			PropertyID:    primitive.NewObjectID(),
			PropertyTitle: "Piso",
			OwnerID:       owner,
			ReviewerID:    primitive.NewObjectID(),
			ReviewerName:  "Reviewer",
			ReviewerRole:  models.RoleTenant,
			Score:         s,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		})
	}
}

func TestServeAPI_StatsAndScoreFilter(t *testing.T) {
	h, f := newTestHandler(t)
	owner := testutil.OwnerUser()
	seedRatings(t, f, owner.ObjectID(), 5, 4, 2, 1)

	rec := httptest.NewRecorder()
	h.ServeAPI(rec, testutil.WithUser(httptest.NewRequest("GET", "/api/v1/ratings?min_score=4", nil), owner))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Matched)
	assert.Equal(t, float64(3), resp.Portfolio[listviews.RatingAverage])
	assert.Equal(t, float64(50), resp.Portfolio[listviews.RatingPositiveRate])
	assert.Equal(t, float64(100), resp.Results[listviews.RatingPositiveRate])
}

func TestServeAPI_NewestFirstByDefault(t *testing.T) {
	h, f := newTestHandler(t)
	owner := testutil.OwnerUser()
	seedRatings(t, f, owner.ObjectID(), 1, 2, 3)

	rec := httptest.NewRecorder()
	h.ServeAPI(rec, testutil.WithUser(httptest.NewRequest("GET", "/api/v1/ratings", nil), owner))

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 3)
	assert.Equal(t, 3, resp.Rows[0].Score)
	assert.Equal(t, 1, resp.Rows[2].Score)
}
