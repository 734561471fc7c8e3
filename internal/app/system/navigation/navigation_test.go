package navigation

import (
	"net/http/httptest"
	"testing"

	"github.com/rent360/rent360/internal/domain/models"
)

func hrefs(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Href
	}
	return out
}

func TestMenu_ByRole(t *testing.T) {
	tests := []struct {
		role string
		want []string
	}{
		{models.RoleAdmin, []string{"/dashboard", "/properties", "/tenants", "/contracts", "/payments", "/maintenance", "/ratings", "/tickets", "/reports", "/profile"}},
		{models.RoleTenant, []string{"/dashboard", "/contracts", "/payments", "/maintenance", "/ratings", "/tickets", "/reports", "/profile"}},
		{models.RoleRunner, []string{"/dashboard", "/maintenance", "/ratings", "/tickets", "/reports", "/profile"}},
		{models.RoleSupport, []string{"/dashboard", "/tickets", "/reports", "/profile"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			got := hrefs(Menu(tt.role, "/"))
			if len(got) != len(tt.want) {
				t.Fatalf("Menu(%q) = %v, want %v", tt.role, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Menu(%q)[%d] = %q, want %q", tt.role, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMenu_Active(t *testing.T) {
	for _, it := range Menu(models.RoleOwner, "/maintenance/new") {
		if it.Active != (it.Href == "/maintenance") {
			t.Errorf("%s active = %v", it.Href, it.Active)
		}
	}
}

func TestSafeReturnURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"/login", "/dashboard"},
		{"/login?return=/tenants?q=ana", "/tenants?q=ana"},
		{"/login?return=https://evil.example/", "/dashboard"},
		{"/login?return=/logout", "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			if got := SafeReturnURL(r, "/dashboard"); got != tt.want {
				t.Errorf("SafeReturnURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
