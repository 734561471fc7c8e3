// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Every collection's index set is reconciled
independently and the problems are aggregated, so one bad collection does
not hide the others and startup can fail fast.

List pages filter in memory after a role-scoped load, so the indexes that
matter are the scope fields (owner_id, broker_id, tenant_id, runner_id) plus
the unique lookups.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, spec := range collections {
		if err := ensureIndexSet(ctx, db.Collection(spec.name), spec.models); err != nil {
			problems = append(problems, spec.name+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type collectionIndexes struct {
	name   string
	models []mongo.IndexModel
}

func idx(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

func unique(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name).SetUnique(true)}
}

// ttl expires documents once field is older than after.
func ttl(name, field string, after time.Duration) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName(name).SetExpireAfterSeconds(int32(after / time.Second)),
	}
}

var collections = []collectionIndexes{
	{"users", []mongo.IndexModel{
		unique("uniq_users_email_ci", bson.D{{Key: "email_ci", Value: 1}}),
		idx("idx_users_role_name", bson.D{{Key: "role", Value: 1}, {Key: "full_name_ci", Value: 1}}),
	}},
	{"properties", []mongo.IndexModel{
		idx("idx_properties_owner", bson.D{{Key: "owner_id", Value: 1}}),
		idx("idx_properties_broker", bson.D{{Key: "broker_id", Value: 1}}),
		idx("idx_properties_status", bson.D{{Key: "status", Value: 1}}),
	}},
	{"tenants", []mongo.IndexModel{
		idx("idx_tenants_owner", bson.D{{Key: "owner_id", Value: 1}}),
		idx("idx_tenants_broker", bson.D{{Key: "broker_id", Value: 1}}),
		idx("idx_tenants_user", bson.D{{Key: "user_id", Value: 1}}),
	}},
	{"contracts", []mongo.IndexModel{
		unique("uniq_contracts_number", bson.D{{Key: "number", Value: 1}}),
		idx("idx_contracts_owner", bson.D{{Key: "owner_id", Value: 1}}),
		idx("idx_contracts_broker", bson.D{{Key: "broker_id", Value: 1}}),
		idx("idx_contracts_tenant", bson.D{{Key: "tenant_id", Value: 1}}),
	}},
	{"payments", []mongo.IndexModel{
		unique("uniq_payments_reference", bson.D{{Key: "reference", Value: 1}}),
		idx("idx_payments_owner", bson.D{{Key: "owner_id", Value: 1}}),
		idx("idx_payments_broker", bson.D{{Key: "broker_id", Value: 1}}),
		idx("idx_payments_tenant_due", bson.D{{Key: "tenant_id", Value: 1}, {Key: "due_date", Value: -1}}),
	}},
	{"maintenance_requests", []mongo.IndexModel{
		unique("uniq_maintenance_reference", bson.D{{Key: "reference", Value: 1}}),
		idx("idx_maintenance_owner", bson.D{{Key: "owner_id", Value: 1}}),
		idx("idx_maintenance_broker", bson.D{{Key: "broker_id", Value: 1}}),
		idx("idx_maintenance_runner", bson.D{{Key: "runner_id", Value: 1}}),
		idx("idx_maintenance_requester", bson.D{{Key: "requested_by_id", Value: 1}}),
	}},
	{"ratings", []mongo.IndexModel{
		idx("idx_ratings_owner", bson.D{{Key: "owner_id", Value: 1}}),
		idx("idx_ratings_reviewer", bson.D{{Key: "reviewer_id", Value: 1}}),
		idx("idx_ratings_subject", bson.D{{Key: "subject_id", Value: 1}}),
	}},
	{"support_tickets", []mongo.IndexModel{
		unique("uniq_tickets_reference", bson.D{{Key: "reference", Value: 1}}),
		idx("idx_tickets_requester", bson.D{{Key: "requester_id", Value: 1}}),
		idx("idx_tickets_status", bson.D{{Key: "status", Value: 1}, {Key: "updated_at", Value: -1}}),
	}},
	{"login_records", []mongo.IndexModel{
		idx("idx_logins_user_created", bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}),
		ttl("ttl_logins_created", "created_at", 365*24*time.Hour),
	}},
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

// Mongo/DocDB return IndexOptionsConflict when an index with the same keys
// exists under a different name.
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		// Collection may not exist yet; CreateOne creates it.
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var ix existingIndex
		if err := cur.Decode(&ix); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(ix.Key)] = ix
	}
	return existing
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing := listExisting(ctx, coll)
	var errs []string

	for _, m := range models {
		name := *m.Options.Name
		sig := keySig(m.Keys.(bson.D))
		wantUnique := m.Options.Unique != nil && *m.Options.Unique

		if ex, ok := existing[sig]; ok {
			haveUnique := ex.Unique != nil && *ex.Unique
			if haveUnique == wantUnique {
				zap.L().Debug("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", sig))
				continue
			}
			// Same keys, different uniqueness: drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s: drop failed: %v", ex.Name, err))
				continue
			}
		}

		start := time.Now()
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isOptionsConflictErr(err) {
				zap.L().Warn("index options conflict; keeping existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", name))
				continue
			}
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		zap.L().Info("index created",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", wantUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
