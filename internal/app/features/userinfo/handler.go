// internal/app/features/userinfo/handler.go
package userinfo

import (
	"encoding/json"
	"net/http"

	"github.com/rent360/rent360/internal/app/system/auth"
)

// Handler serves the identity of the current session.
type Handler struct{}

// NewHandler creates a new userinfo handler.
func NewHandler() *Handler {
	return &Handler{}
}

// identity is the /api/auth/me payload. Unauthenticated callers get zero
// values with isAuthenticated false, never an error status.
type identity struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	LoginID         string `json:"login_id"`
	Role            string `json:"role"`
}

// ServeUserInfo returns JSON with the current user's authentication status and identity.
//
//	{ "isAuthenticated": true, "id": "...", "name": "...", "email": "...", "login_id": "...", "role": "owner" }
//
// Users sign in with their email, so "email" and "login_id" carry the same value.
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	user, ok := auth.CurrentUser(r)
	if !ok {
		_ = json.NewEncoder(w).Encode(identity{})
		return
	}

	_ = json.NewEncoder(w).Encode(identity{
		IsAuthenticated: true,
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.LoginID,
		LoginID:         user.LoginID,
		Role:            user.Role,
	})
}
