package propertystore

import (
	"github.com/rent360/rent360/internal/app/store/scoped"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection name.
const Collection = "properties"

// Owners see their own units, brokers the units they manage.
var fields = scoped.Fields{
	models.RoleOwner:  "owner_id",
	models.RoleBroker: "broker_id",
}

type Store struct {
	*scoped.Collection[models.Property]
}

func New(db *mongo.Database) *Store {
	return &Store{scoped.NewCollection[models.Property](db, Collection, fields)}
}
