// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/rent360/rent360/internal/app/system/auth"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a found flag.
// If no user is present in context or the user ID is malformed, it returns
// "visitor", "", NilObjectID, false. Callers can trust that ok=true means a
// valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session: fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// Scope is who is asking for a collection. Stores translate it into the
// Mongo filter that limits a list to the records that user may see.
type Scope struct {
	Role   string
	UserID primitive.ObjectID
}

// AdminScope sees everything. The report CLI and the seed loader use it, as do
// lookups already authorized through another record.
var AdminScope = Scope{Role: models.RoleAdmin}

// ScopeFor returns the request's scope and whether a user is signed in.
func ScopeFor(r *http.Request) (Scope, bool) {
	role, _, uid, ok := UserCtx(r)
	if !ok {
		return Scope{}, false
	}
	return Scope{Role: role, UserID: uid}, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// CanRequestMaintenance reports whether the user may open a maintenance request.
func CanRequestMaintenance(r *http.Request) bool {
	return HasAnyRole(r, models.RoleAdmin, models.RoleOwner, models.RoleBroker, models.RoleTenant)
}

// CanSeeFinancials reports whether the user may see payment listings and
// money-related reports. Runners and support staff cannot.
func CanSeeFinancials(r *http.Request) bool {
	return HasAnyRole(r, models.RoleAdmin, models.RoleOwner, models.RoleBroker, models.RoleTenant)
}
