package maintenancestore_test

import (
	"regexp"
	"testing"

	maintenancestore "github.com/rent360/rent360/internal/app/store/maintenance"
	"github.com/rent360/rent360/internal/app/system/authz"
	"github.com/rent360/rent360/internal/domain/models"
	"github.com/rent360/rent360/internal/testutil"
)

func TestNewReference(t *testing.T) {
	re := regexp.MustCompile(`^MR-[0-9A-F]{8}$`)
	a, b := maintenancestore.NewReference(), maintenancestore.NewReference()
	if !re.MatchString(a) {
		t.Errorf("unexpected reference format %q", a)
	}
	if a == b {
		t.Error("expected distinct references")
	}
}

func TestCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := maintenancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Ana", "ana@rent360.test", models.RoleOwner)
	tenant := fixtures.CreateUser(ctx, "Marta", "marta@rent360.test", models.RoleTenant)
	p := fixtures.CreateProperty(ctx, "Piso Sol", "Madrid", 950, models.PropertyRented, owner.ID, nil)

	m, err := store.Create(ctx, p, tenant, models.MaintenanceRequest{
		Title:       "  Fuga en el baño ",
		Description: "<p>Gotea</p>",
		Category:    "plumbing",
		Priority:    models.PriorityHigh,
		Status:      models.MaintenanceCompleted, // ignored
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if m.Title != "Fuga en el baño" || m.Status != models.MaintenanceOpen {
		t.Errorf("unexpected request %+v", m)
	}
	if m.OwnerID != owner.ID || m.RequestedByID != tenant.ID || m.PropertyTitle != "Piso Sol" {
		t.Errorf("denormalized fields not set: %+v", m)
	}

	visible, err := store.List(ctx, authz.Scope{Role: models.RoleTenant, UserID: tenant.ID})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(visible) != 1 || visible[0].Reference != m.Reference {
		t.Errorf("tenant should see the request they opened, got %v", visible)
	}
}

func TestCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := maintenancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name string
		in   models.MaintenanceRequest
	}{
		{"missing title", models.MaintenanceRequest{Title: " ", Category: "plumbing", Priority: "low"}},
		{"bad priority", models.MaintenanceRequest{Title: "x", Category: "plumbing", Priority: "asap"}},
		{"bad category", models.MaintenanceRequest{Title: "x", Category: "garden", Priority: "low"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Create(ctx, models.Property{}, models.User{}, tt.in)
			if !maintenancestore.IsValidationError(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}
