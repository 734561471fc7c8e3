// internal/domain/models/supportticket.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SupportTicket is a help-desk request handled by the support role.
type SupportTicket struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Reference     string              `bson:"reference" json:"reference"`
	Subject       string              `bson:"subject" json:"subject"`
	Body          string              `bson:"body" json:"body"` // sanitized HTML
	RequesterID   primitive.ObjectID  `bson:"requester_id" json:"requester_id"`
	Requester     string              `bson:"requester" json:"requester"`
	RequesterRole string              `bson:"requester_role" json:"requester_role"`
	AssigneeID    *primitive.ObjectID `bson:"assignee_id,omitempty" json:"assignee_id,omitempty"`

	Category string `bson:"category" json:"category"` // billing | technical | account | contract | other
	Priority string `bson:"priority" json:"priority"` // urgent | high | medium | low
	Status   string `bson:"status" json:"status"`     // open | in_progress | resolved | closed

	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"updated_at"`
	ResolvedAt *time.Time `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
}

// Ticket statuses.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"
)

// TicketStatuses lists the ticket statuses for filter panels.
var TicketStatuses = []string{TicketOpen, TicketInProgress, TicketResolved, TicketClosed}

// TicketCategories lists the ticket categories for filter panels.
var TicketCategories = []string{"billing", "technical", "account", "contract", "other"}

// IsOpen reports whether the ticket still awaits resolution.
func (t SupportTicket) IsOpen() bool {
	return t.Status == TicketOpen || t.Status == TicketInProgress
}
