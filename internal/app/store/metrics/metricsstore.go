package metricsstore

import (
	"context"

	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the platform headcount shown on the admin dashboard.
type Counts struct {
	Owners      int64
	Brokers     int64
	Tenants     int64
	Runners     int64
	Properties  int64
	Contracts   int64
	OpenTickets int64
}

// FetchPlatformCounts returns platform-wide totals.
// Intentionally tolerant: on error it returns 0 for that counter.
func FetchPlatformCounts(ctx context.Context, db *mongo.Database) Counts {
	var out Counts

	count := func(coll string, filter bson.M, dst *int64) {
		if n, err := db.Collection(coll).CountDocuments(ctx, filter); err == nil {
			*dst = n
		}
	}

	activeRole := func(role string) bson.M {
		return bson.M{"role": role, "status": models.UserActive}
	}
	count("users", activeRole(models.RoleOwner), &out.Owners)
	count("users", activeRole(models.RoleBroker), &out.Brokers)
	count("users", activeRole(models.RoleTenant), &out.Tenants)
	count("users", activeRole(models.RoleRunner), &out.Runners)

	count("properties", bson.M{}, &out.Properties)
	count("contracts", bson.M{}, &out.Contracts)
	count("support_tickets", bson.M{"status": bson.M{"$in": []string{models.TicketOpen, models.TicketInProgress}}}, &out.OpenTickets)

	return out
}
