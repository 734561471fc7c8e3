// internal/domain/models/property.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is a unit offered for rent.
type Property struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"-"`
	Address string             `bson:"address" json:"address"`
	City    string             `bson:"city" json:"city"`
	Type    string             `bson:"type" json:"type"`     // apartment | house | office | commercial | room
	Status  string             `bson:"status" json:"status"` // available | rented | maintenance | pending

	Price     float64 `bson:"price" json:"price"` // monthly rent asked
	Bedrooms  int     `bson:"bedrooms" json:"bedrooms"`
	Bathrooms int     `bson:"bathrooms" json:"bathrooms"`
	AreaM2    float64 `bson:"area_m2" json:"area_m2"`

	OwnerID    primitive.ObjectID  `bson:"owner_id" json:"owner_id"`
	OwnerName  string              `bson:"owner_name" json:"owner_name"`
	BrokerID   *primitive.ObjectID `bson:"broker_id,omitempty" json:"broker_id,omitempty"`
	BrokerName string              `bson:"broker_name,omitempty" json:"broker_name,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Property statuses.
const (
	PropertyAvailable   = "available"
	PropertyRented      = "rented"
	PropertyMaintenance = "maintenance"
	PropertyPending     = "pending"
)

// PropertyStatuses lists the property statuses for filter panels.
var PropertyStatuses = []string{PropertyAvailable, PropertyRented, PropertyMaintenance, PropertyPending}

// PropertyTypes lists the property types for filter panels.
var PropertyTypes = []string{"apartment", "house", "office", "commercial", "room"}
