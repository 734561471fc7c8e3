package tenantstore

import (
	"github.com/rent360/rent360/internal/app/store/scoped"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection name.
const Collection = "tenants"

// A tenant user sees only their own tenancy record.
var fields = scoped.Fields{
	models.RoleOwner:  "owner_id",
	models.RoleBroker: "broker_id",
	models.RoleTenant: "user_id",
}

type Store struct {
	*scoped.Collection[models.Tenant]
}

func New(db *mongo.Database) *Store {
	return &Store{scoped.NewCollection[models.Tenant](db, Collection, fields)}
}
