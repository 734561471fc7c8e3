// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/gorilla/securecookie"
	loginstore "github.com/rent360/rent360/internal/app/store/logins"
	userstore "github.com/rent360/rent360/internal/app/store/users"
	"github.com/rent360/rent360/internal/app/system/auth"
	"github.com/rent360/rent360/internal/app/system/timeouts"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	stateCookie = "rent360_oauth_state"
	stateTTL    = 10 * time.Minute

	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Handler signs existing users in with Google. Accounts are never created
// here; the Google email must match an active user.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Users      *userstore.Store
	Logins     *loginstore.Store

	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "https://rent360.example/auth/google/callback"

	// Endpoint and UserInfoURL default to Google's; tests point them at a
	// local server.
	Endpoint    oauth2.Endpoint
	UserInfoURL string

	cookies *securecookie.SecureCookie
	secure  bool
}

// NewHandler creates a Google sign-in handler. sessionKey signs the
// short-lived state cookie.
func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	clientID, clientSecret, baseURL, sessionKey string,
	secure bool,
	logger *zap.Logger,
) *Handler {
	sc := securecookie.New([]byte(sessionKey), nil)
	sc.MaxAge(int(stateTTL.Seconds()))

	return &Handler{
		DB:           db,
		Log:          logger,
		SessionMgr:   sessionMgr,
		Users:        userstore.New(db),
		Logins:       loginstore.New(db),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
		Endpoint:     google.Endpoint,
		UserInfoURL:  defaultUserInfoURL,
		cookies:      sc,
		secure:       secure,
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: h.Endpoint,
	}
}

// IsConfigured reports whether client credentials are present.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// oauthState travels in a signed cookie between the redirect and the
// callback.
type oauthState struct {
	State     string
	ReturnURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google                                                             |
| Redirects to Google's consent screen.                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	returnURL := query.Get(r, "return")
	encoded, err := h.cookies.Encode(stateCookie, oauthState{State: state, ReturnURL: returnURL})
	if err != nil {
		h.Log.Error("failed to encode OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}
	h.setStateCookie(w, encoded, int(stateTTL.Seconds()))

	url := h.oauth2Config().AuthCodeURL(state)
	h.Log.Debug("initiating Google OAuth flow", zap.String("return_url", returnURL))
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google/callback                                                    |
| Exchanges the code, fetches the Google profile, matches it to a user and    |
| signs them in.                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := query.Get(r, "error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", query.Get(r, "error_description")))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	saved, ok := h.readState(r)
	h.setStateCookie(w, "", -1)
	got := query.Get(r, "state")
	if !ok || got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(saved.State)) != 1 {
		h.Log.Warn("invalid or expired OAuth state")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	code := query.Get(r, "code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		http.Redirect(w, r, "/login?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	profile, err := h.fetchUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}

	lookupCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	u, err := h.findUser(lookupCtx, profile)
	switch {
	case errors.Is(err, errUserNotFound):
		h.Log.Info("Google OAuth: no account", zap.String("email", profile.Email))
		http.Redirect(w, r, "/login?error=no_account", http.StatusSeeOther)
		return
	case errors.Is(err, errUserDisabled):
		h.Log.Info("Google OAuth: account disabled", zap.String("email", profile.Email))
		http.Redirect(w, r, "/login?error=account_disabled", http.StatusSeeOther)
		return
	case err != nil:
		h.Log.Error("failed to look up user", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		http.Redirect(w, r, "/login?error=session", http.StatusSeeOther)
		return
	}
	if err := h.Users.TouchLastLogin(lookupCtx, u.ID, time.Now()); err != nil {
		h.Log.Warn("last login update failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
	}
	if err := h.Logins.CreateFrom(lookupCtx, r, u.ID, models.AuthGoogle); err != nil {
		h.Log.Warn("login record failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
	}

	h.Log.Info("user signed in via Google",
		zap.String("user_id", u.ID.Hex()),
		zap.String("role", u.Role))

	http.Redirect(w, r, urlutil.SafeReturn(saved.ReturnURL, "", "/dashboard"), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| User lookup                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

var (
	errUserNotFound    = errors.New("user not found")
	errUserDisabled    = errors.New("user disabled")
	errEmailUnverified = errors.New("google email not verified")
)

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (h *Handler) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get(h.UserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info: unexpected status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	if !info.EmailVerified {
		return nil, errEmailUnverified
	}
	return &info, nil
}

// findUser matches the Google email to an existing account of any auth
// method.
func (h *Handler) findUser(ctx context.Context, profile *googleUserInfo) (*models.User, error) {
	u, err := h.Users.GetByEmail(ctx, profile.Email)
	if errors.Is(err, userstore.ErrNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if u.Status != models.UserActive {
		return nil, errUserDisabled
	}
	return u, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) readState(r *http.Request) (oauthState, bool) {
	var st oauthState
	c, err := r.Cookie(stateCookie)
	if err != nil {
		return st, false
	}
	if err := h.cookies.Decode(stateCookie, c.Value, &st); err != nil {
		return st, false
	}
	return st, st.State != ""
}

func (h *Handler) setStateCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    value,
		Path:     "/auth/google",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
