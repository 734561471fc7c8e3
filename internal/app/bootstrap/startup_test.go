package bootstrap

import (
	"strings"
	"testing"
	"time"

	userstore "github.com/rent360/rent360/internal/app/store/users"
	"github.com/rent360/rent360/internal/app/system/validators"
	"github.com/rent360/rent360/internal/domain/models"
	"github.com/rent360/rent360/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureAdmin_CreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := ensureAdmin(ctx, db, "Boss@Rent360.test", testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	user, err := userstore.New(db).GetByEmail(ctx, "boss@rent360.test")
	if err != nil {
		t.Fatalf("failed to find created user: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("expected role %q, got %q", models.RoleAdmin, user.Role)
	}
	if user.Status != models.UserActive {
		t.Errorf("expected status %q, got %q", models.UserActive, user.Status)
	}
	if user.AuthMethod != models.AuthGoogle || user.PasswordHash != "" {
		t.Errorf("expected a Google-only account, got method %q", user.AuthMethod)
	}
}

func TestEnsureAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	existing := fixtures.CreateDisabledUser(ctx, "Marta Ortega", "marta@rent360.test", models.RoleBroker)

	if err := ensureAdmin(ctx, db, "marta@rent360.test", testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&user); err != nil {
		t.Fatalf("failed to find user: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("expected role %q, got %q", models.RoleAdmin, user.Role)
	}
	if user.Status != models.UserActive {
		t.Errorf("expected promoted account to be re-enabled, got %q", user.Status)
	}
	if user.PasswordHash == "" {
		t.Error("promotion should keep the existing password")
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 user, got %d", n)
	}
}

func TestEnsureAdmin_AlreadyAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	existing := fixtures.CreateUser(ctx, "Lucía Fernández", "lucia@rent360.test", models.RoleAdmin)

	if err := ensureAdmin(ctx, db, "lucia@rent360.test", testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&user); err != nil {
		t.Fatalf("failed to find user: %v", err)
	}
	if !user.UpdatedAt.Equal(existing.UpdatedAt.Truncate(time.Millisecond)) {
		t.Errorf("expected user to be left untouched, updated_at moved to %v", user.UpdatedAt)
	}
}

func TestSeedDemoData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The demo data has to satisfy the collection validators.
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	if err := seedDemoData(ctx, db, testLogger()); err != nil {
		t.Fatalf("seedDemoData failed: %v", err)
	}

	counts := make(map[string]int64)
	for _, coll := range []string{
		"users", "properties", "tenants", "contracts", "payments",
		"maintenance_requests", "ratings", "support_tickets",
	} {
		n, err := db.Collection(coll).CountDocuments(ctx, bson.M{})
		if err != nil {
			t.Fatalf("CountDocuments(%s) failed: %v", coll, err)
		}
		if n == 0 {
			t.Errorf("expected %s to be seeded", coll)
		}
		counts[coll] = n
	}

	// A second run leaves the data alone.
	if err := seedDemoData(ctx, db, testLogger()); err != nil {
		t.Fatalf("second seedDemoData failed: %v", err)
	}
	for coll, want := range counts {
		n, _ := db.Collection(coll).CountDocuments(ctx, bson.M{})
		if n != want {
			t.Errorf("%s: expected %d documents after re-seed, got %d", coll, want, n)
		}
	}

	// Seeded accounts sign in with the demo password.
	if _, err := userstore.New(db).Authenticate(ctx, "ana.ruiz@rent360.demo", "rent360demo"); err != nil {
		t.Errorf("demo owner cannot sign in: %v", err)
	}
}

func validConfig() AppConfig {
	return AppConfig{
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "rent360",
		MongoMaxPoolSize: 100,
		MongoMinPoolSize: 10,
		SessionKey:       strings.Repeat("k", 40),
		SessionMaxAge:    time.Hour,
		BaseURL:          "http://localhost:8080",
		CollationLocale:  language.Spanish,
	}
}

func TestValidateAppConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid", "dev", func(*AppConfig) {}, ""},
		{"dev key allowed in dev", "dev", func(c *AppConfig) { c.SessionKey = devSessionKey }, ""},
		{"dev key refused in prod", "prod", func(c *AppConfig) { c.SessionKey = devSessionKey }, "changed in production"},
		{"short key", "dev", func(c *AppConfig) { c.SessionKey = "short" }, "at least 32"},
		{"no database", "dev", func(c *AppConfig) { c.MongoDatabase = "" }, "mongo_database"},
		{"pool sizes inverted", "dev", func(c *AppConfig) { c.MongoMinPoolSize = 200 }, "exceeds"},
		{"google id without secret", "dev", func(c *AppConfig) { c.GoogleClientID = "id" }, "set together"},
		{"google without base url", "dev", func(c *AppConfig) {
			c.GoogleClientID, c.GoogleClientSecret, c.BaseURL = "id", "secret", ""
		}, "base_url"},
		{"zero session age", "dev", func(c *AppConfig) { c.SessionMaxAge = 0 }, "session_max_age"},
		{"sweep disabled", "dev", func(c *AppConfig) { c.OverdueSweepInterval = 0 }, ""},
		{"negative sweep interval", "dev", func(c *AppConfig) { c.OverdueSweepInterval = -time.Minute }, "overdue_sweep_interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := validateAppConfig(tt.env, cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAppConfig_GoogleEnabled(t *testing.T) {
	cfg := validConfig()
	if cfg.GoogleEnabled() {
		t.Error("expected Google disabled without credentials")
	}
	cfg.GoogleClientID, cfg.GoogleClientSecret = "id", "secret"
	if !cfg.GoogleEnabled() {
		t.Error("expected Google enabled with credentials")
	}
}

func TestViewOptions(t *testing.T) {
	cfg := validConfig()
	cfg.MaintenanceAttention = 72 * time.Hour
	cfg.TicketAttention = 0
	cfg.PaymentAttention = 720 * time.Hour

	o := viewOptions(cfg)
	if o.Locale != language.Spanish {
		t.Errorf("Locale = %v, want es", o.Locale)
	}
	if o.MaintenanceAttention != 72*time.Hour || o.TicketAttention != 0 || o.PaymentAttention != 720*time.Hour {
		t.Errorf("unexpected thresholds %+v", o)
	}
	if !o.Now.IsZero() {
		t.Error("Now should be left for the request to fill")
	}
}
