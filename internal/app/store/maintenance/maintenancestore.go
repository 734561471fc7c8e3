package maintenancestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rent360/rent360/internal/app/store/scoped"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection name.
const Collection = "maintenance_requests"

// Tenants see what they asked for, runners what they were assigned.
var fields = scoped.Fields{
	models.RoleOwner:  "owner_id",
	models.RoleBroker: "broker_id",
	models.RoleTenant: "requested_by_id",
	models.RoleRunner: "runner_id",
}

var (
	errTitleRequired = errors.New("title is required")
	errBadPriority   = errors.New(`priority must be "urgent"|"high"|"medium"|"low"`)
	errBadCategory   = errors.New("unknown maintenance category")
)

type Store struct {
	*scoped.Collection[models.MaintenanceRequest]
}

func New(db *mongo.Database) *Store {
	return &Store{scoped.NewCollection[models.MaintenanceRequest](db, Collection, fields)}
}

// NewReference returns a short human-facing reference such as "MR-3F9A1C2E".
func NewReference() string {
	return "MR-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// IsValidationError reports whether err came from Create's input checks.
func IsValidationError(err error) bool {
	return errors.Is(err, errTitleRequired) || errors.Is(err, errBadPriority) || errors.Is(err, errBadCategory)
}

// Create validates and inserts a new open request on p. The description
// must already be sanitized.
func (s *Store) Create(ctx context.Context, p models.Property, requester models.User, m models.MaintenanceRequest) (models.MaintenanceRequest, error) {
	m.Title = strings.TrimSpace(m.Title)
	if m.Title == "" {
		return models.MaintenanceRequest{}, errTitleRequired
	}
	if _, ok := models.PrioritySeverity[m.Priority]; !ok {
		return models.MaintenanceRequest{}, errBadPriority
	}
	if !contains(models.MaintenanceCategories, m.Category) {
		return models.MaintenanceRequest{}, errBadCategory
	}

	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.Reference = NewReference()
	m.PropertyID = p.ID
	m.PropertyTitle = p.Title
	m.OwnerID = p.OwnerID
	m.BrokerID = p.BrokerID
	m.RequestedByID = requester.ID
	m.RequestedBy = requester.FullName
	m.Status = models.MaintenanceOpen
	m.RunnerID = nil
	m.RunnerName = ""
	m.ActualCost = nil
	m.ResolvedAt = nil
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.Insert(ctx, m); err != nil {
		return models.MaintenanceRequest{}, fmt.Errorf("create maintenance request: %w", err)
	}
	return m, nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
