package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/rent360/rent360/internal/app/system/auth"
	"github.com/rent360/rent360/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testUserID returns a valid ObjectID hex string for tests.
func testUserID() string {
	return primitive.NewObjectID().Hex()
}

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)

	role, name, uid, ok := authz.UserCtx(req)
	if ok {
		t.Error("expected ok=false without a user")
	}
	if role != "visitor" || name != "" || uid != primitive.NilObjectID {
		t.Errorf("unexpected visitor values: %q %q %v", role, name, uid)
	}
}

func TestUserCtx_MalformedID_FailsClosed(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "not-an-objectid", Role: "admin"})

	if _, _, _, ok := authz.UserCtx(req); ok {
		t.Error("expected ok=false for malformed user ID")
	}
}

func TestUserCtx_LowercasesRole(t *testing.T) {
	id := testUserID()
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: id, Name: "Ana", Role: "OWNER"})

	role, name, uid, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "owner" || name != "Ana" || uid.Hex() != id {
		t.Errorf("got %q %q %s", role, name, uid.Hex())
	}
}

func TestScopeFor(t *testing.T) {
	id := testUserID()
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: id, Role: "broker"})

	s, ok := authz.ScopeFor(req)
	if !ok {
		t.Fatal("expected scope")
	}
	if s.Role != "broker" || s.UserID.Hex() != id {
		t.Errorf("unexpected scope %+v", s)
	}

	if _, ok := authz.ScopeFor(httptest.NewRequest("GET", "/test", nil)); ok {
		t.Error("expected no scope for anonymous request")
	}
}

func TestRoleChecks(t *testing.T) {
	tests := []struct {
		role        string
		admin       bool
		maintenance bool
		financials  bool
	}{
		{"admin", true, true, true},
		{"owner", false, true, true},
		{"broker", false, true, true},
		{"tenant", false, true, true},
		{"runner", false, false, false},
		{"support", false, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.role, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			req = auth.WithTestUser(req, &auth.SessionUser{ID: testUserID(), Role: tc.role})

			if got := authz.IsAdmin(req); got != tc.admin {
				t.Errorf("IsAdmin = %v, want %v", got, tc.admin)
			}
			if got := authz.CanRequestMaintenance(req); got != tc.maintenance {
				t.Errorf("CanRequestMaintenance = %v, want %v", got, tc.maintenance)
			}
			if got := authz.CanSeeFinancials(req); got != tc.financials {
				t.Errorf("CanSeeFinancials = %v, want %v", got, tc.financials)
			}
		})
	}
}

func TestHasAnyRole(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: testUserID(), Role: "Support"})

	if !authz.HasAnyRole(req, "admin", " support ") {
		t.Error("expected support to match")
	}
	if authz.HasRole(req, "tenant") {
		t.Error("did not expect tenant to match")
	}
	if role, ok := authz.Role(req); !ok || role != "support" {
		t.Errorf("Role() = %q, %v", role, ok)
	}
}
