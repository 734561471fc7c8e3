// internal/domain/models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is one rent installment under a contract.
type Payment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference string             `bson:"reference" json:"reference"`

	ContractID    primitive.ObjectID  `bson:"contract_id" json:"contract_id"`
	PropertyTitle string              `bson:"property_title" json:"property_title"`
	TenantID      primitive.ObjectID  `bson:"tenant_id" json:"tenant_id"`
	TenantName    string              `bson:"tenant_name" json:"tenant_name"`
	OwnerID       primitive.ObjectID  `bson:"owner_id" json:"owner_id"`
	BrokerID      *primitive.ObjectID `bson:"broker_id,omitempty" json:"broker_id,omitempty"`

	Amount  float64    `bson:"amount" json:"amount"`
	Status  string     `bson:"status" json:"status"`                     // paid | pending | overdue | failed
	Method  string     `bson:"method,omitempty" json:"method,omitempty"` // transfer | card | cash | check
	DueDate time.Time  `bson:"due_date" json:"due_date"`
	PaidAt  *time.Time `bson:"paid_at,omitempty" json:"paid_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Payment statuses.
const (
	PaymentPaid          = "paid"
	PaymentPending       = "pending"
	PaymentStatusOverdue = "overdue"
	PaymentFailed        = "failed"
)

// PaymentStatuses lists the payment statuses for filter panels.
var PaymentStatuses = []string{PaymentPaid, PaymentPending, PaymentStatusOverdue, PaymentFailed}

// PaymentMethods lists the payment methods for filter panels.
var PaymentMethods = []string{"transfer", "card", "cash", "check"}
