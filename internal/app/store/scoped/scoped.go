// Package scoped is the shared base for the role-scoped record stores.
//
// Each record store declares, per role, which field must equal the caller's
// user ID for a document to be visible. A role missing from the table sees
// nothing; the value All lets that role see the whole collection. Admins
// always see everything.
package scoped

import (
	"context"
	"errors"
	"fmt"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/rent360/rent360/internal/app/system/authz"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// All marks a role that may see every document in the collection.
const All = "*"

var (
	// ErrNotFound is returned when a document does not exist or is outside
	// the caller's scope.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("record already exists")
)

// Fields maps a role to the field holding the user ID that grants access.
type Fields map[string]string

// Filter returns the Mongo filter for s, and false when the role sees nothing.
func (f Fields) Filter(s authz.Scope) (bson.M, bool) {
	if s.Role == models.RoleAdmin {
		return bson.M{}, true
	}
	field, ok := f[s.Role]
	if !ok {
		return nil, false
	}
	if field == All {
		return bson.M{}, true
	}
	if s.UserID.IsZero() {
		return nil, false
	}
	return bson.M{field: s.UserID}, true
}

// Collection is a typed, role-scoped view of one Mongo collection.
type Collection[T any] struct {
	c      *mongo.Collection
	fields Fields
}

// NewCollection binds name in db to T with the given scope table.
func NewCollection[T any](db *mongo.Database, name string, fields Fields) *Collection[T] {
	return &Collection[T]{c: db.Collection(name), fields: fields}
}

// Mongo exposes the underlying collection for store-specific queries.
func (c *Collection[T]) Mongo() *mongo.Collection { return c.c }

// List returns every document visible to s, oldest first. A role with no
// access gets an empty slice and no error.
func (c *Collection[T]) List(ctx context.Context, s authz.Scope) ([]T, error) {
	filter, ok := c.fields.Filter(s)
	if !ok {
		return []T{}, nil
	}
	return c.find(ctx, filter)
}

// Where is List narrowed by an extra filter.
func (c *Collection[T]) Where(ctx context.Context, s authz.Scope, extra bson.M) ([]T, error) {
	filter, ok := c.fields.Filter(s)
	if !ok {
		return []T{}, nil
	}
	for k, v := range extra {
		filter[k] = v
	}
	return c.find(ctx, filter)
}

func (c *Collection[T]) find(ctx context.Context, filter bson.M) ([]T, error) {
	cur, err := c.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.c.Name(), err)
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.c.Name(), err)
	}
	return out, nil
}

// GetByID loads one document if it is visible to s.
func (c *Collection[T]) GetByID(ctx context.Context, s authz.Scope, id primitive.ObjectID) (T, error) {
	var zero T
	filter, ok := c.fields.Filter(s)
	if !ok {
		return zero, ErrNotFound
	}
	filter["_id"] = id

	var doc T
	if err := c.c.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("get %s: %w", c.c.Name(), err)
	}
	return doc, nil
}

// Insert stores one document.
func (c *Collection[T]) Insert(ctx context.Context, doc T) error {
	if _, err := c.c.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", c.c.Name(), err)
	}
	return nil
}

// InsertMany stores docs in one round trip. An empty slice is a no-op.
func (c *Collection[T]) InsertMany(ctx context.Context, docs []T) error {
	if len(docs) == 0 {
		return nil
	}
	batch := make([]any, len(docs))
	for i := range docs {
		batch[i] = docs[i]
	}
	if _, err := c.c.InsertMany(ctx, batch); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", c.c.Name(), err)
	}
	return nil
}

// Count returns the number of documents in the collection, ignoring scope.
func (c *Collection[T]) Count(ctx context.Context) (int64, error) {
	return c.c.CountDocuments(ctx, bson.M{})
}
