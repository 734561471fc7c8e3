package authgoogle_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rent360/rent360/internal/app/features/authgoogle"
	"github.com/rent360/rent360/internal/app/system/auth"
	"github.com/rent360/rent360/internal/domain/models"
	"github.com/rent360/rent360/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const sessionKey = "test-session-key-for-testing-only"

func newTestHandler(t *testing.T, clientID string) (*authgoogle.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	sessionMgr, err := auth.NewSessionManager(sessionKey, "test-session", "", time.Hour, false, logger)
	require.NoError(t, err)

	h := authgoogle.NewHandler(db, sessionMgr, clientID, "test-client-secret", "http://localhost:8080", sessionKey, false, logger)
	return h, testutil.NewFixtures(t, db)
}

// fakeGoogle serves the token and userinfo endpoints.
func fakeGoogle(t *testing.T, email string, verified bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-access-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-access-token" {
			http.Error(w, "no token", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":             "g-123",
			"email":          email,
			"verified_email": verified,
			"name":           "Ana Ruiz",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func pointAt(h *authgoogle.Handler, srv *httptest.Server) {
	h.Endpoint = oauth2.Endpoint{
		AuthURL:   srv.URL + "/auth",
		TokenURL:  srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	h.UserInfoURL = srv.URL + "/userinfo"
}

// begin runs ServeLogin and returns the state cookie and the state value
// sent to the provider.
func begin(t *testing.T, h *authgoogle.Handler, target string) (*http.Cookie, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, httptest.NewRequest("GET", target, nil))
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "rent360_oauth_state" {
			return c, state
		}
	}
	t.Fatal("state cookie not set")
	return nil, ""
}

func callback(h *authgoogle.Handler, cookie *http.Cookie, params url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/auth/google/callback?"+params.Encode(), nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.Value != "" {
			return true
		}
	}
	return false
}

func TestIsConfigured(t *testing.T) {
	h, _ := newTestHandler(t, "test-client-id")
	assert.True(t, h.IsConfigured())

	h.ClientID = ""
	assert.False(t, h.IsConfigured())
}

func TestServeLogin_NotConfigured(t *testing.T) {
	h, _ := newTestHandler(t, "")

	rec := httptest.NewRecorder()
	h.ServeLogin(rec, httptest.NewRequest("GET", "/auth/google", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error=google_not_configured", rec.Header().Get("Location"))
}

func TestServeLogin_RedirectsToProvider(t *testing.T) {
	h, _ := newTestHandler(t, "test-client-id")

	rec := httptest.NewRecorder()
	h.ServeLogin(rec, httptest.NewRequest("GET", "/auth/google", nil))

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	loc := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, "https://accounts.google.com/"), loc)
	assert.Contains(t, loc, "client_id=test-client-id")
	assert.Contains(t, loc, url.QueryEscape("http://localhost:8080/auth/google/callback"))
}

func TestServeCallback_Rejections(t *testing.T) {
	h, _ := newTestHandler(t, "test-client-id")
	cookie, state := begin(t, h, "/auth/google")

	tests := []struct {
		name   string
		cookie *http.Cookie
		params url.Values
		want   string
	}{
		{"provider error", cookie, url.Values{"error": {"access_denied"}}, "/login?error=google_denied"},
		{"missing state", cookie, url.Values{"code": {"abc"}}, "/login?error=invalid_state"},
		{"state mismatch", cookie, url.Values{"state": {"forged"}, "code": {"abc"}}, "/login?error=invalid_state"},
		{"no state cookie", nil, url.Values{"state": {state}, "code": {"abc"}}, "/login?error=invalid_state"},
		{"tampered cookie", &http.Cookie{Name: cookie.Name, Value: cookie.Value + "x"}, url.Values{"state": {state}, "code": {"abc"}}, "/login?error=invalid_state"},
		{"missing code", cookie, url.Values{"state": {state}}, "/login?error=invalid_code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := callback(h, tt.cookie, tt.params)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
			assert.False(t, sessionCookie(rec))
		})
	}
}

func TestServeCallback_SignsInExistingUser(t *testing.T) {
	h, fixtures := newTestHandler(t, "test-client-id")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ana Ruiz", "ana@rent360.test", models.RoleBroker)
	pointAt(h, fakeGoogle(t, "Ana@Rent360.test", true))

	cookie, state := begin(t, h, "/auth/google?return=/contracts")
	rec := callback(h, cookie, url.Values{"state": {state}, "code": {"good-code"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/contracts", rec.Header().Get("Location"))
	assert.True(t, sessionCookie(rec), "expected session cookie")

	logins, err := h.Logins.Recent(ctx, u.ID, 5)
	require.NoError(t, err)
	require.Len(t, logins, 1)
	assert.Equal(t, models.AuthGoogle, logins[0].Provider)
}

func TestServeCallback_AccountProblems(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		verified bool
		want     string
	}{
		{"no account", "stranger@rent360.test", true, "/login?error=no_account"},
		{"disabled", "luis@rent360.test", true, "/login?error=account_disabled"},
		{"unverified email", "ana@rent360.test", false, "/login?error=user_info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fixtures := newTestHandler(t, "test-client-id")
			ctx, cancel := testutil.TestContext()
			defer cancel()

			fixtures.CreateUser(ctx, "Ana Ruiz", "ana@rent360.test", models.RoleOwner)
			fixtures.CreateDisabledUser(ctx, "Luis Mora", "luis@rent360.test", models.RoleTenant)
			pointAt(h, fakeGoogle(t, tt.email, tt.verified))

			cookie, state := begin(t, h, "/auth/google")
			rec := callback(h, cookie, url.Values{"state": {state}, "code": {"good-code"}})

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
			assert.False(t, sessionCookie(rec))
		})
	}
}

func TestRoutes(t *testing.T) {
	h, _ := newTestHandler(t, "")
	router := authgoogle.Routes(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/callback?error=access_denied", nil))
	assert.Equal(t, "/login?error=google_denied", rec.Header().Get("Location"))
}
