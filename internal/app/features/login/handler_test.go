package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	uierrors "github.com/rent360/rent360/internal/app/features/errors"
	"github.com/rent360/rent360/internal/app/features/login"
	userstore "github.com/rent360/rent360/internal/app/store/users"
	"github.com/rent360/rent360/internal/app/system/auth"
	"github.com/rent360/rent360/internal/app/system/ratelimit"
	"github.com/rent360/rent360/internal/domain/models"
	"github.com/rent360/rent360/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*login.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	handler := login.NewHandler(db, sessionMgr, errLog, false, logger)
	t.Cleanup(handler.Limiter.Close)
	return handler, testutil.NewFixtures(t, db)
}

func postLogin(h *login.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	// Failure paths render the login template, which is not loaded in tests.
	func() {
		defer func() { recover() }()
		h.HandleLoginPost(rec, req)
	}()
	return rec
}

func hasSessionCookie(rec *httptest.ResponseRecorder) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.Value != "" {
			return true
		}
	}
	return false
}

func TestHandleLoginPost_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ana Ruiz", "ana@rent360.test", models.RoleOwner)

	rec := postLogin(handler, url.Values{"email": {"ana@rent360.test"}, "password": {"secret123"}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location: got %q, want %q", loc, "/dashboard")
	}
	if !hasSessionCookie(rec) {
		t.Error("expected session cookie to be set")
	}

	stored, err := userstore.New(fixtures.DB()).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.LastLoginAt == nil {
		t.Error("expected last_login_at to be recorded")
	}

	logins, err := handler.Logins.Recent(ctx, u.ID, 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(logins) != 1 || logins[0].Provider != models.AuthPassword {
		t.Errorf("expected one password login record, got %+v", logins)
	}
}

func TestHandleLoginPost_WithReturnURL(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Ana Ruiz", "ana@rent360.test", models.RoleOwner)

	tests := []struct {
		ret  string
		want string
	}{
		{"/payments?status=overdue", "/payments?status=overdue"},
		{"https://evil.example/phish", "/dashboard"},
		{"/logout", "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.ret, func(t *testing.T) {
			rec := postLogin(handler, url.Values{
				"email":    {"ana@rent360.test"},
				"password": {"secret123"},
				"return":   {tt.ret},
			})
			if rec.Code != http.StatusSeeOther {
				t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != tt.want {
				t.Errorf("Location: got %q, want %q", loc, tt.want)
			}
		})
	}
}

func TestHandleLoginPost_Rejected(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Ana Ruiz", "ana@rent360.test", models.RoleOwner)
	fixtures.CreateDisabledUser(ctx, "Luis Mora", "luis@rent360.test", models.RoleTenant)

	tests := []struct {
		name     string
		email    string
		password string
		want     int
	}{
		{"empty email", "", "secret123", http.StatusUnprocessableEntity},
		{"empty password", "ana@rent360.test", "", http.StatusUnprocessableEntity},
		{"unknown email", "nobody@rent360.test", "secret123", http.StatusUnauthorized},
		{"wrong password", "ana@rent360.test", "nope-nope", http.StatusUnauthorized},
		{"disabled account", "luis@rent360.test", "secret123", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postLogin(handler, url.Values{"email": {tt.email}, "password": {tt.password}})
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
			if hasSessionCookie(rec) {
				t.Error("session cookie should not be set")
			}
		})
	}
}

func TestHandleLoginPost_CaseInsensitiveEmail(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Ana Ruiz", "ana@rent360.test", models.RoleOwner)

	rec := postLogin(handler, url.Values{"email": {"  ANA@Rent360.TEST "}, "password": {"secret123"}})
	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
}

func TestHandleLoginPost_RateLimited(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	handler.Limiter.Close()
	handler.Limiter = ratelimit.NewLoginLimiterWithConfig(ratelimit.Config{PerIP: 100, PerEmail: 2})
	t.Cleanup(handler.Limiter.Close)

	fixtures.CreateUser(ctx, "Ana Ruiz", "ana@rent360.test", models.RoleOwner)

	for i := 0; i < 2; i++ {
		postLogin(handler, url.Values{"email": {"ana@rent360.test"}, "password": {"wrong-one"}})
	}
	rec := postLogin(handler, url.Values{"email": {"ana@rent360.test"}, "password": {"secret123"}})
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if hasSessionCookie(rec) {
		t.Error("session cookie should not be set while rate limited")
	}
}

func TestServeLogin_SignedInRedirects(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.WithUser(httptest.NewRequest("GET", "/login", nil), testutil.OwnerUser())
	rec := httptest.NewRecorder()
	handler.ServeLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location: got %q, want %q", loc, "/dashboard")
	}
}
