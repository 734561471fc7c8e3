// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account of any role.
//
// Email is stored as typed; EmailCI is the folded form used for lookups.
// PasswordHash is empty for accounts that only sign in with Google.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         string             `bson:"role" json:"role"`
	Status       string             `bson:"status" json:"status"`           // active | disabled
	AuthMethod   string             `bson:"auth_method" json:"auth_method"` // password | google
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
}

// User statuses.
const (
	UserActive   = "active"
	UserDisabled = "disabled"
)

// Auth methods.
const (
	AuthPassword = "password"
	AuthGoogle   = "google"
)
