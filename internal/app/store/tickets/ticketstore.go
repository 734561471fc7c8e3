package ticketstore

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rent360/rent360/internal/app/store/scoped"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection name.
const Collection = "support_tickets"

// Support staff work the whole queue; everyone else sees what they raised.
var fields = scoped.Fields{
	models.RoleSupport: scoped.All,
	models.RoleOwner:   "requester_id",
	models.RoleBroker:  "requester_id",
	models.RoleTenant:  "requester_id",
	models.RoleRunner:  "requester_id",
}

type Store struct {
	*scoped.Collection[models.SupportTicket]
}

func New(db *mongo.Database) *Store {
	return &Store{scoped.NewCollection[models.SupportTicket](db, Collection, fields)}
}

// NewReference returns a short human-facing reference such as "TK-0B41D9E7".
func NewReference() string {
	return "TK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
