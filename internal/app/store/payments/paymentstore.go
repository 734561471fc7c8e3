package paymentstore

import (
	"github.com/rent360/rent360/internal/app/store/scoped"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection name.
const Collection = "payments"

var fields = scoped.Fields{
	models.RoleOwner:  "owner_id",
	models.RoleBroker: "broker_id",
	models.RoleTenant: "tenant_id",
}

type Store struct {
	*scoped.Collection[models.Payment]
}

func New(db *mongo.Database) *Store {
	return &Store{scoped.NewCollection[models.Payment](db, Collection, fields)}
}
