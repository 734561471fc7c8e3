package viewdata_test

import (
	"net/http/httptest"
	"testing"

	"github.com/rent360/rent360/internal/app/system/viewdata"
	"github.com/rent360/rent360/internal/testutil"
)

func TestNewBaseVM_Anonymous(t *testing.T) {
	r := httptest.NewRequest("GET", "/login", nil)
	vm := viewdata.NewBaseVM(r, "Sign in", "/")

	if vm.IsLoggedIn {
		t.Error("expected anonymous view")
	}
	if vm.SiteName != viewdata.SiteName {
		t.Errorf("SiteName = %q", vm.SiteName)
	}
	if len(vm.Menu) != 0 {
		t.Errorf("anonymous menu = %v, want empty", vm.Menu)
	}
}

func TestNewBaseVM_SignedIn(t *testing.T) {
	u := testutil.OwnerUser()
	r := testutil.WithUser(httptest.NewRequest("GET", "/properties?status=rented", nil), u)
	vm := viewdata.NewBaseVM(r, "Properties", "/dashboard")

	if !vm.IsLoggedIn || vm.Role != "owner" || vm.UserName != u.Name {
		t.Errorf("unexpected user context: %+v", vm)
	}
	if vm.Title != "Properties" {
		t.Errorf("Title = %q", vm.Title)
	}

	var active string
	for _, it := range vm.Menu {
		if it.Active {
			active = it.Href
		}
	}
	if active != "/properties" {
		t.Errorf("active menu = %q, want /properties", active)
	}
}
