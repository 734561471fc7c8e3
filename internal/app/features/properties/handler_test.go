package properties_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	errorsfeature "github.com/rent360/rent360/internal/app/features/errors"
	"github.com/rent360/rent360/internal/app/features/properties"
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
	Rows      []models.Property  `json:"rows"`
	Total     int                `json:"total"`
	Portfolio map[string]float64 `json:"portfolio"`
	Results   map[string]float64 `json:"results"`
}

func newTestHandler(t *testing.T) (*properties.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := properties.NewHandler(listing.Deps{
		DB:     db,
		Log:    logger,
		ErrLog: errorsfeature.NewErrorLogger(logger),
		Views:  listviews.DefaultOptions(),
	})
	return h, testutil.NewFixtures(t, db)
}

func get(t *testing.T, h *properties.Handler, target string, u testutil.TestUser) apiResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeAPI(rec, testutil.WithUser(httptest.NewRequest("GET", target, nil), u))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestServeAPI_PriceRangeKeepsOrder(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	for _, price := range []float64{350000, 450000, 600000, 800000, 1200000} {
		f.CreateProperty(ctx, "Depto", "Santiago", price, models.PropertyAvailable, owner, nil)
	}

	resp := get(t, h, "/api/v1/properties?min_price=400000&max_price=900000&sort=price", testutil.AdminUser())

	var prices []float64
	for _, p := range resp.Rows {
		prices = append(prices, p.Price)
	}
	assert.Equal(t, []float64{450000, 600000, 800000}, prices)
	assert.Equal(t, 5.0, resp.Portfolio[listviews.PropertyTotal])
	assert.Equal(t, 3.0, resp.Results[listviews.PropertyTotal])
}

func TestServeAPI_BrokerScope(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	broker := testutil.BrokerUser()
	bid := broker.ObjectID()
	owner := primitive.NewObjectID()
	f.CreateProperty(ctx, "Managed", "Santiago", 500000, models.PropertyRented, owner, &bid)
	f.CreateProperty(ctx, "Direct", "Santiago", 500000, models.PropertyRented, owner, nil)

	resp := get(t, h, "/api/v1/properties", broker)

	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "Managed", resp.Rows[0].Title)
	assert.Equal(t, 100.0, resp.Portfolio[listviews.PropertyOccupancyRate])
}

func TestServeAPI_TenantRoleSeesNothing(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f.CreateProperty(ctx, "Depto", "Santiago", 500000, models.PropertyRented, primitive.NewObjectID(), nil)

	resp := get(t, h, "/api/v1/properties", testutil.TenantUser())

	assert.Empty(t, resp.Rows)
	assert.Equal(t, 0.0, resp.Portfolio[listviews.PropertyOccupancyRate])
}
