// internal/domain/models/tenant.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tenant is a renter as seen from the owner/broker side: who they are, which
// property they occupy and how their payments stand.
type Tenant struct {
	ID     primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID *primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Name   string              `bson:"name" json:"name"`
	NameCI string              `bson:"name_ci" json:"-"`
	Email  string              `bson:"email" json:"email"`
	Phone  string              `bson:"phone,omitempty" json:"phone,omitempty"`

	PropertyID    primitive.ObjectID  `bson:"property_id" json:"property_id"`
	PropertyTitle string              `bson:"property_title" json:"property_title"`
	OwnerID       primitive.ObjectID  `bson:"owner_id" json:"owner_id"`
	BrokerID      *primitive.ObjectID `bson:"broker_id,omitempty" json:"broker_id,omitempty"`

	PaymentStatus string     `bson:"payment_status" json:"payment_status"` // current | late | overdue
	MonthlyRent   float64    `bson:"monthly_rent" json:"monthly_rent"`
	LeaseStart    time.Time  `bson:"lease_start" json:"lease_start"`
	LeaseEnd      *time.Time `bson:"lease_end,omitempty" json:"lease_end,omitempty"`
	LastPaymentAt *time.Time `bson:"last_payment_at,omitempty" json:"last_payment_at,omitempty"`
	Rating        *float64   `bson:"rating,omitempty" json:"rating,omitempty"` // 1-5, nil until rated

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Tenant payment statuses.
const (
	PaymentCurrent = "current"
	PaymentLate    = "late"
	PaymentOverdue = "overdue"
)

// TenantPaymentStatuses lists the tenant payment statuses for filter panels.
var TenantPaymentStatuses = []string{PaymentCurrent, PaymentLate, PaymentOverdue}
