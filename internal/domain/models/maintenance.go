// internal/domain/models/maintenance.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceRequest is a repair or service job on a property. Runners are
// the field staff who carry them out.
type MaintenanceRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference   string             `bson:"reference" json:"reference"` // e.g. MR-3f9a1c2e
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"` // sanitized HTML

	PropertyID    primitive.ObjectID  `bson:"property_id" json:"property_id"`
	PropertyTitle string              `bson:"property_title" json:"property_title"`
	OwnerID       primitive.ObjectID  `bson:"owner_id" json:"owner_id"`
	BrokerID      *primitive.ObjectID `bson:"broker_id,omitempty" json:"broker_id,omitempty"`
	RequestedByID primitive.ObjectID  `bson:"requested_by_id" json:"requested_by_id"`
	RequestedBy   string              `bson:"requested_by" json:"requested_by"`
	RunnerID      *primitive.ObjectID `bson:"runner_id,omitempty" json:"runner_id,omitempty"`
	RunnerName    string              `bson:"runner_name,omitempty" json:"runner_name,omitempty"`

	Category string `bson:"category" json:"category"` // plumbing | electrical | hvac | appliance | structural | other
	Priority string `bson:"priority" json:"priority"` // urgent | high | medium | low
	Status   string `bson:"status" json:"status"`     // open | assigned | in_progress | completed | cancelled

	EstimatedCost float64  `bson:"estimated_cost" json:"estimated_cost"`
	ActualCost    *float64 `bson:"actual_cost,omitempty" json:"actual_cost,omitempty"`

	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"updated_at"`
	ResolvedAt *time.Time `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
}

// Maintenance statuses.
const (
	MaintenanceOpen       = "open"
	MaintenanceAssigned   = "assigned"
	MaintenanceInProgress = "in_progress"
	MaintenanceCompleted  = "completed"
	MaintenanceCancelled  = "cancelled"
)

// Priorities shared by maintenance requests and support tickets.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// PrioritySeverity ranks priorities for severity ordering.
var PrioritySeverity = map[string]int{
	PriorityUrgent: 4,
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Priorities lists priorities from most to least severe.
var Priorities = []string{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

// MaintenanceStatuses lists the maintenance statuses for filter panels.
var MaintenanceStatuses = []string{MaintenanceOpen, MaintenanceAssigned, MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled}

// MaintenanceCategories lists the maintenance categories for filter panels.
var MaintenanceCategories = []string{"plumbing", "electrical", "hvac", "appliance", "structural", "other"}

// IsOpen reports whether the request still needs work.
func (m MaintenanceRequest) IsOpen() bool {
	switch m.Status {
	case MaintenanceOpen, MaintenanceAssigned, MaintenanceInProgress:
		return true
	}
	return false
}
