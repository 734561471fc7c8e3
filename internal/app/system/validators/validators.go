// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("properties", propertiesSchema())
	ensure("tenants", tenantsSchema())
	ensure("contracts", contractsSchema())
	ensure("payments", paymentsSchema())
	ensure("maintenance_requests", maintenanceSchema())
	ensure("ratings", ratingsSchema())
	ensure("support_tickets", ticketsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var (
	nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	objectID = bson.M{"bsonType": "objectId"}
	date     = bson.M{"bsonType": "date"}
	money    = bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "minimum": 0}
)

// enum builds an enum clause from one of the canonical lists in models.
func enum(values []string) bson.M {
	out := make(bson.A, len(values))
	for i, v := range values {
		out[i] = v
	}
	return bson.M{"enum": out}
}

func schema(required []string, props bson.M) bson.M {
	req := make(bson.A, len(required))
	for i, r := range required {
		req[i] = r
	}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":   "object",
			"required":   req,
			"properties": props,
		},
	}
}

func usersSchema() bson.M {
	return schema(
		[]string{"full_name", "email", "email_ci", "role", "status", "auth_method"},
		bson.M{
			"full_name":   nonBlank,
			"email":       nonBlank,
			"email_ci":    nonBlank,
			"role":        enum(models.Roles),
			"status":      enum([]string{models.UserActive, models.UserDisabled}),
			"auth_method": enum([]string{models.AuthPassword, models.AuthGoogle}),
		},
	)
}

func propertiesSchema() bson.M {
	return schema(
		[]string{"title", "title_ci", "city", "type", "status", "price", "owner_id"},
		bson.M{
			"title":     nonBlank,
			"title_ci":  nonBlank,
			"city":      nonBlank,
			"type":      enum(models.PropertyTypes),
			"status":    enum(models.PropertyStatuses),
			"price":     money,
			"bedrooms":  bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
			"bathrooms": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
			"owner_id":  objectID,
			"broker_id": objectID,
		},
	)
}

func tenantsSchema() bson.M {
	return schema(
		[]string{"name", "name_ci", "property_id", "owner_id", "payment_status"},
		bson.M{
			"name":           nonBlank,
			"name_ci":        nonBlank,
			"property_id":    objectID,
			"owner_id":       objectID,
			"payment_status": enum(models.TenantPaymentStatuses),
			"monthly_rent":   money,
			"lease_start":    date,
			"rating":         bson.M{"bsonType": bson.A{"double", "int"}, "minimum": 0, "maximum": 5},
		},
	)
}

func contractsSchema() bson.M {
	return schema(
		[]string{"number", "property_id", "tenant_id", "owner_id", "status", "monthly_rent", "start_date", "end_date"},
		bson.M{
			"number":       nonBlank,
			"property_id":  objectID,
			"tenant_id":    objectID,
			"owner_id":     objectID,
			"status":       enum(models.ContractStatuses),
			"monthly_rent": money,
			"deposit":      money,
			"start_date":   date,
			"end_date":     date,
		},
	)
}

func paymentsSchema() bson.M {
	return schema(
		[]string{"reference", "contract_id", "tenant_id", "owner_id", "amount", "status", "due_date"},
		bson.M{
			"reference":   nonBlank,
			"contract_id": objectID,
			"tenant_id":   objectID,
			"owner_id":    objectID,
			"amount":      money,
			"status":      enum(models.PaymentStatuses),
			"method":      enum(models.PaymentMethods),
			"due_date":    date,
		},
	)
}

func maintenanceSchema() bson.M {
	return schema(
		[]string{"reference", "title", "property_id", "owner_id", "requested_by_id", "category", "priority", "status", "created_at"},
		bson.M{
			"reference":       nonBlank,
			"title":           nonBlank,
			"property_id":     objectID,
			"owner_id":        objectID,
			"requested_by_id": objectID,
			"runner_id":       objectID,
			"category":        enum(models.MaintenanceCategories),
			"priority":        enum(models.Priorities),
			"status":          enum(models.MaintenanceStatuses),
			"estimated_cost":  money,
			"created_at":      date,
		},
	)
}

func ratingsSchema() bson.M {
	return schema(
		[]string{"property_id", "owner_id", "reviewer_id", "reviewer_role", "score", "created_at"},
		bson.M{
			"property_id":   objectID,
			"owner_id":      objectID,
			"reviewer_id":   objectID,
			"reviewer_role": enum(models.Roles),
			"score":         bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1, "maximum": 5},
			"created_at":    date,
		},
	)
}

func ticketsSchema() bson.M {
	return schema(
		[]string{"reference", "subject", "requester_id", "category", "priority", "status", "created_at"},
		bson.M{
			"reference":    nonBlank,
			"subject":      nonBlank,
			"requester_id": objectID,
			"category":     enum(models.TicketCategories),
			"priority":     enum(models.Priorities),
			"status":       enum(models.TicketStatuses),
			"created_at":   date,
		},
	)
}
