package payments_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	errorsfeature "github.com/rent360/rent360/internal/app/features/errors"
	"github.com/rent360/rent360/internal/app/features/payments"
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	"github.com/rent360/rent360/internal/app/listviews"
	"github.com/rent360/rent360/internal/domain/models"
	"github.com/rent360/rent360/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type apiResponse struct {
	Rows          []models.Payment   `json:"rows"`
	Total         int                `json:"total"`
	Matched       int                `json:"matched"`
	FiltersActive bool               `json:"filters_active"`
	Portfolio     map[string]float64 `json:"portfolio"`
	Results       map[string]float64 `json:"results"`
}

func newTestHandler(t *testing.T) (*payments.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := payments.NewHandler(listing.Deps{
		DB:     db,
		Log:    logger,
		ErrLog: errorsfeature.NewErrorLogger(logger),
		Views:  listviews.DefaultOptions(),
	})
	return h, testutil.NewFixtures(t, db)
}

func seedPayment(t *testing.T, f *testutil.Fixtures, ref, status string, amount float64, due time.Time, owner primitive.ObjectID) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f.Insert(ctx, "payments", models.Payment{
		ID:         primitive.NewObjectID(),
		Reference:  ref,
		ContractID: primitive.NewObjectID(),
		TenantID:   primitive.NewObjectID(),
		TenantName: "Tenant " + ref,
		OwnerID:    owner,
		Amount:     amount,
		Status:     status,
		Method:     "transfer",
		DueDate:    due,
		CreatedAt:  due,
	})
}

func get(t *testing.T, h *payments.Handler, url string, u testutil.TestUser) apiResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeAPI(rec, testutil.WithUser(httptest.NewRequest("GET", url, nil), u))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp apiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestServeAPI_CollectionStats(t *testing.T) {
	h, f := newTestHandler(t)
	owner := testutil.OwnerUser()
	now := time.Now().UTC()

	seedPayment(t, f, "PAY-1", models.PaymentPaid, 1000, now.AddDate(0, -2, 0), owner.ObjectID())
	seedPayment(t, f, "PAY-2", models.PaymentPaid, 1000, now.AddDate(0, -1, 0), owner.ObjectID())
	seedPayment(t, f, "PAY-3", models.PaymentPending, 1000, now.AddDate(0, 0, 10), owner.ObjectID())
	seedPayment(t, f, "PAY-4", models.PaymentStatusOverdue, 1000, now.AddDate(0, -3, 0), owner.ObjectID())

	resp := get(t, h, "/api/v1/payments", owner)
	if resp.Total != 4 {
		t.Fatalf("total = %d, want 4", resp.Total)
	}
	if got := resp.Portfolio[listviews.PaymentCollectionRate]; got != 50 {
		t.Errorf("collection rate = %v, want 50", got)
	}
	if got := resp.Portfolio[listviews.PaymentCollected]; got != 2000 {
		t.Errorf("collected = %v, want 2000", got)
	}
	if got := resp.Portfolio[listviews.PaymentNeedsAttention]; got != 1 {
		t.Errorf("needs attention = %v, want 1", got)
	}
}

func TestServeAPI_AttentionFilter(t *testing.T) {
	h, f := newTestHandler(t)
	owner := testutil.OwnerUser()
	now := time.Now().UTC()

	seedPayment(t, f, "PAY-OLD", models.PaymentStatusOverdue, 800, now.AddDate(0, -3, 0), owner.ObjectID())
	seedPayment(t, f, "PAY-NEW", models.PaymentPending, 800, now.AddDate(0, 0, -2), owner.ObjectID())

	resp := get(t, h, "/api/v1/payments?attention=true", owner)
	if !resp.FiltersActive {
		t.Error("expected filters_active")
	}
	if resp.Matched != 1 || resp.Rows[0].Reference != "PAY-OLD" {
		t.Errorf("rows = %+v, want only PAY-OLD", resp.Rows)
	}
}

func TestServeAPI_OtherOwnersHidden(t *testing.T) {
	h, f := newTestHandler(t)
	now := time.Now().UTC()
	seedPayment(t, f, "PAY-X", models.PaymentPaid, 500, now, primitive.NewObjectID())

	resp := get(t, h, "/api/v1/payments", testutil.OwnerUser())
	if resp.Total != 0 || len(resp.Rows) != 0 {
		t.Errorf("owner saw %d foreign payments", resp.Total)
	}
}
