// Package navigation builds the role menu and resolves safe return URLs.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/rent360/rent360/internal/domain/models"
)

// Item is one entry of the top menu.
type Item struct {
	Label  string
	Href   string
	Active bool
}

type entry struct {
	label string
	href  string
	roles []string // empty means every signed-in role
}

var menu = []entry{
	{label: "Dashboard", href: "/dashboard"},
	{label: "Properties", href: "/properties", roles: []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker}},
	{label: "Tenants", href: "/tenants", roles: []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker}},
	{label: "Contracts", href: "/contracts", roles: []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker, models.RoleTenant}},
	{label: "Payments", href: "/payments", roles: []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker, models.RoleTenant}},
	{label: "Maintenance", href: "/maintenance", roles: []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker, models.RoleTenant, models.RoleRunner}},
	{label: "Ratings", href: "/ratings", roles: []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker, models.RoleTenant, models.RoleRunner}},
	{label: "Support", href: "/tickets"},
	{label: "Reports", href: "/reports"},
	{label: "Profile", href: "/profile"},
}

// Menu returns the menu entries visible to role, marking the one that
// prefixes currentPath as active. An empty role gets no menu.
func Menu(role, currentPath string) []Item {
	if role == "" {
		return nil
	}
	var out []Item
	for _, e := range menu {
		if !allowed(e.roles, role) {
			continue
		}
		out = append(out, Item{
			Label:  e.label,
			Href:   e.href,
			Active: currentPath == e.href || strings.HasPrefix(currentPath, e.href+"/"),
		})
	}
	return out
}

func allowed(roles []string, role string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// SafeReturnURL returns the request's "return" URL (query first, then form)
// when it is a local path, and fallback otherwise. Paths under /login and
// /logout are rejected to avoid redirect loops.
func SafeReturnURL(r *http.Request, fallback string) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}
	if ret == "" || strings.HasPrefix(ret, "/login") || strings.HasPrefix(ret, "/logout") {
		return fallback
	}
	return ret
}
