// internal/domain/models/roles.go
package models

// User roles. Every account has exactly one.
const (
	RoleAdmin   = "admin"
	RoleOwner   = "owner"
	RoleBroker  = "broker"
	RoleTenant  = "tenant"
	RoleRunner  = "runner"
	RoleSupport = "support"
)

// Roles lists every role in the order role pickers show them.
var Roles = []string{RoleAdmin, RoleOwner, RoleBroker, RoleTenant, RoleRunner, RoleSupport}

// IsValidRole reports whether r is a known role.
func IsValidRole(r string) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}
