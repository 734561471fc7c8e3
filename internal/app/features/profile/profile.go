// internal/app/features/profile/profile.go
package profile

import (
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	userstore "github.com/rent360/rent360/internal/app/store/users"
	"github.com/rent360/rent360/internal/app/system/authutil"
	"github.com/rent360/rent360/internal/app/system/authz"
	"github.com/rent360/rent360/internal/app/system/format"
	"github.com/rent360/rent360/internal/app/system/timeouts"
	"github.com/rent360/rent360/internal/app/system/viewdata"
	"github.com/rent360/rent360/internal/domain/models"
	"go.uber.org/zap"
)

type loginRow struct {
	At     string
	Ago    string
	Method string
	IP     string
}

// profileData is the view model for the profile page.
type profileData struct {
	viewdata.BaseVM

	FullName    string
	Email       string
	Phone       string
	RoleLabel   string
	AuthMethod  string
	MemberSince string
	Logins      []loginRow

	// Password section (only shown for password accounts)
	ShowPasswordSection bool
	PasswordRules       string

	Error   string
	Success string
}

var roleLabels = map[string]string{
	models.RoleAdmin:   "Administrator",
	models.RoleOwner:   "Owner",
	models.RoleBroker:  "Broker",
	models.RoleTenant:  "Tenant",
	models.RoleRunner:  "Maintenance runner",
	models.RoleSupport: "Support",
}

func authMethodLabel(method string) string {
	switch method {
	case models.AuthPassword:
		return "Password"
	case models.AuthGoogle:
		return "Google"
	default:
		return method
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /profile                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeProfile renders the signed-in user's account details.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, uid)
	if errors.Is(err, userstore.ErrNotFound) {
		h.ErrLog.LogForbidden(w, r, "profile of missing user", "Your account could not be found.", "/")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile failed", err, "Unable to load your profile.", "/dashboard")
		return
	}

	data := h.buildData(r, user)
	if query.Get(r, "success") == "password" {
		data.Success = "Password changed."
	}
	templates.Render(w, r, "profile", data)
}

// buildData fills the page for user. A failed login-history lookup is
// logged and leaves the list empty.
func (h *Handler) buildData(r *http.Request, user *models.User) profileData {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	data := profileData{
		BaseVM:              viewdata.NewBaseVM(r, "Profile", "/dashboard"),
		FullName:            user.FullName,
		Email:               user.Email,
		Phone:               user.Phone,
		RoleLabel:           roleLabels[user.Role],
		AuthMethod:          authMethodLabel(user.AuthMethod),
		MemberSince:         format.Date(user.CreatedAt),
		ShowPasswordSection: user.AuthMethod == models.AuthPassword,
		PasswordRules:       authutil.PasswordRules(),
	}

	recs, err := h.Logins.Recent(ctx, user.ID, recentLogins)
	if err != nil {
		h.Log.Warn("login history lookup failed", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		return data
	}
	now := time.Now()
	for _, rec := range recs {
		data.Logins = append(data.Logins, loginRow{
			At:     rec.CreatedAt.UTC().Format(time.RFC3339),
			Ago:    format.Ago(rec.CreatedAt, now),
			Method: authMethodLabel(rec.Provider),
			IP:     rec.IP,
		})
	}
	return data
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /profile/password                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleChangePassword verifies the current password and stores a new one.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/profile")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, uid)
	if errors.Is(err, userstore.ErrNotFound) {
		h.ErrLog.LogForbidden(w, r, "password change for missing user", "Your account could not be found.", "/")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile failed", err, "Unable to load your profile.", "/profile")
		return
	}

	if user.AuthMethod != models.AuthPassword {
		h.renderWithError(w, r, user, http.StatusConflict, "This account signs in with Google and has no password to change.")
		return
	}

	current := r.FormValue("current_password")
	next := r.FormValue("new_password")

	switch {
	case !authutil.CheckPassword(current, user.PasswordHash):
		h.renderWithError(w, r, user, http.StatusUnprocessableEntity, "Current password is incorrect.")
		return
	case next != r.FormValue("confirm_password"):
		h.renderWithError(w, r, user, http.StatusUnprocessableEntity, "New passwords do not match.")
		return
	case next == current:
		h.renderWithError(w, r, user, http.StatusUnprocessableEntity, "New password must differ from the current one.")
		return
	}
	if err := authutil.ValidatePassword(next); err != nil {
		h.renderWithError(w, r, user, http.StatusUnprocessableEntity, err.Error())
		return
	}

	hash, err := authutil.HashPassword(next)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "Failed to update password.", "/profile")
		return
	}
	if err := h.Users.UpdatePassword(ctx, uid, hash); err != nil {
		h.ErrLog.LogServerError(w, r, "update password failed", err, "Failed to update password.", "/profile")
		return
	}

	h.Log.Info("password changed", zap.String("user_id", uid.Hex()))
	http.Redirect(w, r, "/profile?success=password", http.StatusSeeOther)
}

func (h *Handler) renderWithError(w http.ResponseWriter, r *http.Request, user *models.User, status int, msg string) {
	data := h.buildData(r, user)
	data.Error = msg
	w.WriteHeader(status)
	templates.Render(w, r, "profile", data)
}
