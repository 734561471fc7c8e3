package reports

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	errorsfeature "github.com/rent360/rent360/internal/app/features/errors"
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	"github.com/rent360/rent360/internal/app/listviews"
	"github.com/rent360/rent360/internal/domain/models"
	"github.com/rent360/rent360/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := NewHandler(listing.Deps{
		DB:     db,
		Log:    logger,
		ErrLog: errorsfeature.NewErrorLogger(logger),
		Views:  listviews.DefaultOptions(),
	})
	return h, testutil.NewFixtures(t, db)
}

func export(h *Handler, entity, query string, u testutil.TestUser) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/reports/"+entity+".csv"+query, nil)
	req.Header.Set("Accept", "application/json, text/csv")
	req = testutil.WithChiURLParam(testutil.WithUser(req, u), "entity", entity)
	rec := httptest.NewRecorder()
	h.ServeCSV(rec, req)
	return rec
}

func readCSV(t *testing.T, body []byte) [][]string {
	t.Helper()
	body = bytes.TrimPrefix(body, []byte{0xEF, 0xBB, 0xBF})
	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestServeCSV_FilteredProperties(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.OwnerUser()
	f.CreateProperty(ctx, "Loft Centro", "Madrid", 1200, models.PropertyRented, owner.ObjectID(), nil)
	f.CreateProperty(ctx, "Casa Sur", "Sevilla", 800, models.PropertyAvailable, owner.ObjectID(), nil)
	f.CreateProperty(ctx, "Ajena", "Madrid", 500, models.PropertyAvailable, primitive.NewObjectID(), nil)

	rec := export(h, "properties", "?status=available", owner)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), `attachment; filename="properties_`))

	records := readCSV(t, rec.Body.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, "title", records[0][0])
	assert.Equal(t, "Casa Sur", records[1][0])
}

func TestServeCSV_QuotesFormulaText(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.OwnerUser()
	f.CreateProperty(ctx, "=HYPERLINK(\"http://evil\")", "Madrid", 1200, models.PropertyAvailable, owner.ObjectID(), nil)

	rec := export(h, "properties", "", owner)
	require.Equal(t, http.StatusOK, rec.Code)

	records := readCSV(t, rec.Body.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, "'=HYPERLINK(\"http://evil\")", records[1][0])
	assert.Equal(t, "1200.00", records[1][5])
}

func TestServeCSV_RoleGate(t *testing.T) {
	h, _ := newTestHandler(t)

	assert.Equal(t, http.StatusForbidden, export(h, "payments", "", testutil.RunnerUser()).Code)
	assert.Equal(t, http.StatusForbidden, export(h, "properties", "", testutil.TenantUser()).Code)
	assert.Equal(t, http.StatusOK, export(h, "tickets", "", testutil.RunnerUser()).Code)
}

func TestServeCSV_UnknownEntity(t *testing.T) {
	h, _ := newTestHandler(t)
	assert.Equal(t, http.StatusNotFound, export(h, "leases", "", testutil.AdminUser()).Code)
}

func TestServeCSV_EmptyHasHeader(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := export(h, "contracts", "", testutil.AdminUser())
	require.Equal(t, http.StatusOK, rec.Code)
	records := readCSV(t, rec.Body.Bytes())
	require.Len(t, records, 1)
	assert.Equal(t, "number", records[0][0])
}

func TestCSVFilename(t *testing.T) {
	r := httptest.NewRequest("GET", "/reports/tenants.csv?filename=mine", nil)
	assert.Equal(t, "mine.csv", csvFilename(r, "tenants"))

	r = httptest.NewRequest("GET", "/reports/tenants.csv", nil)
	got := csvFilename(r, "tenants")
	assert.True(t, strings.HasPrefix(got, "tenants_"))
	assert.True(t, strings.HasSuffix(got, ".csv"))
}

func TestAvailable(t *testing.T) {
	h, _ := newTestHandler(t)

	labels := func(role string) []string {
		var out []string
		for _, l := range h.available(role) {
			out = append(out, l.Label)
		}
		return out
	}
	assert.Equal(t, []string{"Support tickets"}, labels(models.RoleSupport))
	assert.Equal(t, []string{"Maintenance", "Ratings", "Support tickets"}, labels(models.RoleRunner))
	assert.Len(t, labels(models.RoleAdmin), len(listviews.Entities))
}
