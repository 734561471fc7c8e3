package ratingstore

import (
	"github.com/rent360/rent360/internal/app/store/scoped"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection name.
const Collection = "ratings"

// Owners see reviews of their properties; runners see the reviews about
// their work; everyone else sees the reviews they wrote.
var fields = scoped.Fields{
	models.RoleOwner:  "owner_id",
	models.RoleBroker: "reviewer_id",
	models.RoleTenant: "reviewer_id",
	models.RoleRunner: "subject_id",
}

type Store struct {
	*scoped.Collection[models.Rating]
}

func New(db *mongo.Database) *Store {
	return &Store{scoped.NewCollection[models.Rating](db, Collection, fields)}
}
