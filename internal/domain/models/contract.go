// internal/domain/models/contract.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contract is a lease agreement between an owner and a tenant.
type Contract struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Number string             `bson:"number" json:"number"` // human reference, e.g. CTR-2026-014

	PropertyID    primitive.ObjectID  `bson:"property_id" json:"property_id"`
	PropertyTitle string              `bson:"property_title" json:"property_title"`
	TenantID      primitive.ObjectID  `bson:"tenant_id" json:"tenant_id"` // user id of the tenant
	TenantName    string              `bson:"tenant_name" json:"tenant_name"`
	OwnerID       primitive.ObjectID  `bson:"owner_id" json:"owner_id"`
	OwnerName     string              `bson:"owner_name" json:"owner_name"`
	BrokerID      *primitive.ObjectID `bson:"broker_id,omitempty" json:"broker_id,omitempty"`

	Status      string     `bson:"status" json:"status"` // draft | pending | active | completed | terminated
	MonthlyRent float64    `bson:"monthly_rent" json:"monthly_rent"`
	Deposit     float64    `bson:"deposit" json:"deposit"`
	StartDate   time.Time  `bson:"start_date" json:"start_date"`
	EndDate     time.Time  `bson:"end_date" json:"end_date"`
	SignedAt    *time.Time `bson:"signed_at,omitempty" json:"signed_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Contract statuses.
const (
	ContractDraft      = "draft"
	ContractPending    = "pending"
	ContractActive     = "active"
	ContractCompleted  = "completed"
	ContractTerminated = "terminated"
)

// ContractStatuses lists the contract statuses for filter panels.
var ContractStatuses = []string{ContractDraft, ContractPending, ContractActive, ContractCompleted, ContractTerminated}
