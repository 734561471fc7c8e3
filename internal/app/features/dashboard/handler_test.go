package dashboard_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rent360/rent360/internal/app/features/dashboard"
	errorsfeature "github.com/rent360/rent360/internal/app/features/errors"
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	"github.com/rent360/rent360/internal/app/listviews"
	"github.com/rent360/rent360/internal/domain/models"
	"github.com/rent360/rent360/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type apiPanel struct {
	Entity string             `json:"entity"`
	Stats  map[string]float64 `json:"stats"`
}

type apiSummary struct {
	Role     string `json:"role"`
	Platform *struct {
		Owners     int64
		Properties int64
	} `json:"platform"`
	Panels []apiPanel `json:"panels"`
}

func newTestHandler(t *testing.T) (*dashboard.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := dashboard.NewHandler(listing.Deps{
		DB:     db,
		Log:    logger,
		ErrLog: errorsfeature.NewErrorLogger(logger),
		Views:  listviews.DefaultOptions(),
	})
	return h, testutil.NewFixtures(t, db)
}

func summaryFor(t *testing.T, h *dashboard.Handler, u testutil.TestUser) apiSummary {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeAPI(rec, testutil.WithUser(httptest.NewRequest("GET", "/api/v1/dashboard", nil), u))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var s apiSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return s
}

func entities(s apiSummary) []string {
	out := make([]string, 0, len(s.Panels))
	for _, p := range s.Panels {
		out = append(out, p.Entity)
	}
	return out
}

func TestServeDashboard_Unauthenticated(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeDashboard(rec, httptest.NewRequest("GET", "/dashboard", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}

func TestServeAPI_PanelsByRole(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		user testutil.TestUser
		want []string
	}{
		{testutil.AdminUser(), listviews.Entities},
		{testutil.OwnerUser(), listviews.Entities},
		{testutil.TenantUser(), []string{"contracts", "payments", "maintenance", "ratings", "tickets"}},
		{testutil.RunnerUser(), []string{"maintenance", "ratings", "tickets"}},
		{testutil.SupportUser(), []string{"tickets"}},
	}

	for _, tt := range tests {
		t.Run(tt.user.Role, func(t *testing.T) {
			s := summaryFor(t, h, tt.user)
			got := entities(s)
			if len(got) != len(tt.want) {
				t.Fatalf("panels = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("panel %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
			if (s.Platform != nil) != (tt.user.Role == models.RoleAdmin) {
				t.Errorf("platform present = %v for role %s", s.Platform != nil, tt.user.Role)
			}
		})
	}
}

func TestServeAPI_OwnerStats(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.OwnerUser()
	p := f.CreateProperty(ctx, "Loft", "Madrid", 1000, models.PropertyRented, owner.ObjectID(), nil)
	f.CreateProperty(ctx, "Casa", "Madrid", 800, models.PropertyAvailable, owner.ObjectID(), nil)
	f.CreateProperty(ctx, "Ajena", "Madrid", 800, models.PropertyRented, primitive.NewObjectID(), nil)
	f.CreateMaintenance(ctx, "Boiler", models.PriorityUrgent, models.MaintenanceOpen, p, nil, time.Now().UTC())

	s := summaryFor(t, h, owner)
	byEntity := map[string]map[string]float64{}
	for _, p := range s.Panels {
		byEntity[p.Entity] = p.Stats
	}

	if got := byEntity["properties"][listviews.PropertyTotal]; got != 2 {
		t.Errorf("properties total = %v, want 2", got)
	}
	if got := byEntity["properties"][listviews.PropertyOccupancyRate]; got != 50 {
		t.Errorf("occupancy = %v, want 50", got)
	}
	if got := byEntity["maintenance"][listviews.MaintenanceUrgent]; got != 1 {
		t.Errorf("urgent = %v, want 1", got)
	}
}

func TestServeAPI_AdminPlatformCounts(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateUser(ctx, "Olga", "olga@rent360.test", models.RoleOwner)
	f.CreateProperty(ctx, "Loft", "Madrid", 1000, models.PropertyRented, owner.ID, nil)

	s := summaryFor(t, h, testutil.AdminUser())
	if s.Platform == nil {
		t.Fatal("expected platform counts")
	}
	if s.Platform.Owners != 1 || s.Platform.Properties != 1 {
		t.Errorf("platform = %+v, want 1 owner and 1 property", *s.Platform)
	}
}
