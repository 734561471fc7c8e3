// internal/app/features/login/handler.go
package login

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/rent360/rent360/internal/app/features/errors"
	loginstore "github.com/rent360/rent360/internal/app/store/logins"
	userstore "github.com/rent360/rent360/internal/app/store/users"
	"github.com/rent360/rent360/internal/app/system/auth"
	"github.com/rent360/rent360/internal/app/system/navigation"
	"github.com/rent360/rent360/internal/app/system/normalize"
	"github.com/rent360/rent360/internal/app/system/ratelimit"
	"github.com/rent360/rent360/internal/app/system/timeouts"
	"github.com/rent360/rent360/internal/app/system/viewdata"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	SessionMgr    *auth.SessionManager
	ErrLog        *uierrors.ErrorLogger
	Users         *userstore.Store
	Logins        *loginstore.Store
	Limiter       *ratelimit.LoginLimiter
	GoogleEnabled bool // shows the "Sign in with Google" button
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error         string
	Email         string // what the user typed
	ReturnURL     string
	GoogleEnabled bool
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, googleEnabled bool, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		SessionMgr:    sessionMgr,
		ErrLog:        errLog,
		Users:         userstore.New(db),
		Logins:        loginstore.New(db),
		Limiter:       ratelimit.NewLoginLimiter(),
		GoogleEnabled: googleEnabled,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, navigation.SafeReturnURL(r, "/dashboard"), http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL:     query.Get(r, "return"),
		GoogleEnabled: h.GoogleEnabled,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.renderFormWithError(w, r, http.StatusUnprocessableEntity, "Please enter your email and password.", email)
		return
	}

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, email); !ok {
			h.Log.Warn("login rate limited",
				zap.String("email", email),
				zap.String("ip", ratelimit.ClientIP(r)))
			h.renderFormWithError(w, r, http.StatusTooManyRequests, reason, email)
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Authenticate(ctx, email, password)
	if errors.Is(err, userstore.ErrInvalidCredentials) {
		h.Log.Info("login rejected", zap.String("email", email))
		h.renderFormWithError(w, r, http.StatusUnauthorized, "Email or password is incorrect.", email)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "authenticate failed", err, "Unable to sign in right now.", "/login")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		h.Log.Error("session save failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		h.renderFormWithError(w, r, http.StatusInternalServerError, "Unable to create session. Please try again.", email)
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetEmail(email)
	}

	if err := h.Users.TouchLastLogin(ctx, u.ID, time.Now()); err != nil {
		h.Log.Warn("last login update failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
	}
	if err := h.Logins.CreateFrom(ctx, r, u.ID, models.AuthPassword); err != nil {
		h.Log.Warn("login record failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
	}

	h.Log.Info("user signed in",
		zap.String("user_id", u.ID.Hex()),
		zap.String("role", u.Role))

	http.Redirect(w, r, navigation.SafeReturnURL(r, "/dashboard"), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| helper: render the form with an error                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, status int, msg, email string) {
	// From POST, "return" will be in the form; from GET, we might rely on the query.
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = query.Get(r, "return")
	}

	w.WriteHeader(status)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:         msg,
		Email:         email,
		ReturnURL:     ret,
		GoogleEnabled: h.GoogleEnabled,
	})
}
