package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/rent360/rent360/internal/app/system/auth"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// ObjectID returns the user's ID as an ObjectID.
func (u TestUser) ObjectID() primitive.ObjectID {
	oid, _ := primitive.ObjectIDFromHex(u.ID)
	return oid
}

// UserWithRole returns a TestUser with a fresh ID and the given role.
func UserWithRole(role string) TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test " + role,
		Email: role + "@rent360.test",
		Role:  role,
	}
}

func AdminUser() TestUser   { return UserWithRole(models.RoleAdmin) }
func OwnerUser() TestUser   { return UserWithRole(models.RoleOwner) }
func BrokerUser() TestUser  { return UserWithRole(models.RoleBroker) }
func TenantUser() TestUser  { return UserWithRole(models.RoleTenant) }
func RunnerUser() TestUser  { return UserWithRole(models.RoleRunner) }
func SupportUser() TestUser { return UserWithRole(models.RoleSupport) }

// WithUser adds a user to the request context for testing authenticated handlers.
// This bypasses the session middleware and injects the user directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:      user.ID,
		Name:    user.Name,
		LoginID: user.Email,
		Role:    user.Role,
	})
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// AsTestUser returns the session identity of a fixture user.
func AsTestUser(u models.User) TestUser {
	return TestUser{ID: u.ID.Hex(), Name: u.FullName, Email: u.Email, Role: u.Role}
}
