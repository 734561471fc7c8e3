// internal/domain/models/rating.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating is a 1–5 review left on a property or on the people around it.
type Rating struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyID    primitive.ObjectID `bson:"property_id" json:"property_id"`
	PropertyTitle string             `bson:"property_title" json:"property_title"`
	OwnerID       primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	ReviewerID   primitive.ObjectID `bson:"reviewer_id" json:"reviewer_id"`
	ReviewerName string             `bson:"reviewer_name" json:"reviewer_name"`
	ReviewerRole string             `bson:"reviewer_role" json:"reviewer_role"`

	// SubjectID is the user being rated (the runner for a service rating,
	// the owner for a landlord rating); nil for property reviews.
	SubjectID *primitive.ObjectID `bson:"subject_id,omitempty" json:"subject_id,omitempty"`

	Score     int       `bson:"score" json:"score"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"` // sanitized HTML
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// PositiveScore is the lowest score counted as a positive review.
const PositiveScore = 4
