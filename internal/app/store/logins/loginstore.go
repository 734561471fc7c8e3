// internal/app/store/logins/loginstore.go
package loginstore

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rent360/rent360/internal/app/system/ratelimit"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection name.
const Collection = "login_records"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create inserts rec. A zero CreatedAt is set to now.
func (s *Store) Create(ctx context.Context, rec models.LoginRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert login record: %w", err)
	}
	return nil
}

// CreateFrom records a sign-in by userID using the client address and
// user agent of r.
func (s *Store) CreateFrom(ctx context.Context, r *http.Request, userID primitive.ObjectID, provider string) error {
	return s.Create(ctx, models.LoginRecord{
		UserID:    userID,
		Provider:  provider,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
}

// Recent returns up to limit sign-ins by userID, newest first.
func (s *Store) Recent(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.LoginRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find login records: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.LoginRecord{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode login records: %w", err)
	}
	return out, nil
}
