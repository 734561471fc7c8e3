package userstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/rent360/rent360/internal/app/system/authutil"
	"github.com/rent360/rent360/internal/app/system/normalize"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection name.
const Collection = "users"

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrNotFound is returned when no user matches.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers unknown email, wrong password, disabled
	// account and Google-only accounts alike, so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid email or password")

	errBadRole   = errors.New(`role must be "admin"|"owner"|"broker"|"tenant"|"runner"|"support"`)
	errBadStatus = errors.New(`status must be "active"|"disabled"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email_ci": text.Fold(normalize.Email(email))})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields. A
// non-empty password must pass authutil.ValidatePassword and is stored
// hashed; an empty one makes a Google-only account.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.EmailCI = text.Fold(u.Email)
	u.Role = normalize.Role(u.Role)
	u.Status = normalize.Status(u.Status)
	if u.Status == "" {
		u.Status = models.UserActive
	}

	if !models.IsValidRole(u.Role) {
		return models.User{}, errBadRole
	}
	if u.Status != models.UserActive && u.Status != models.UserDisabled {
		return models.User{}, errBadStatus
	}

	if password != "" {
		if err := authutil.ValidatePassword(password); err != nil {
			return models.User{}, err
		}
		hash, err := authutil.HashPassword(password)
		if err != nil {
			return models.User{}, err
		}
		u.PasswordHash = hash
		u.AuthMethod = models.AuthPassword
	} else {
		u.PasswordHash = ""
		u.AuthMethod = models.AuthGoogle
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// InsertMany stores pre-built users (demo seed). Documents are stored as given.
func (s *Store) InsertMany(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	docs := make([]any, len(users))
	for i := range users {
		docs[i] = users[i]
	}
	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Authenticate checks an email/password pair and returns the active user.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if u.Status != models.UserActive || !authutil.CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Count returns the number of user documents.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// TouchLastLogin records a successful sign-in.
func (s *Store) TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_login_at": at.UTC()}})
	return err
}

// UpdatePassword stores a new password hash for id.
func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByRole returns the number of active users per role.
func (s *Store) CountByRole(ctx context.Context) (map[string]int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.UserActive}}},
		{{Key: "$group", Value: bson.M{"_id": "$role", "n": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]int64, len(models.Roles))
	for cur.Next(ctx) {
		var row struct {
			Role string `bson:"_id"`
			N    int64  `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[strings.ToLower(row.Role)] = row.N
	}
	return out, cur.Err()
}

// ListByRole returns active users with role, sorted by name.
func (s *Store) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"role": role, "status": models.UserActive},
		options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
