package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert into %s: %v", coll, err)
	}
}

// CreateUser creates an active password user. The password is "secret123".
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("bcrypt: %v", err)
	}
	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Email:        email,
		EmailCI:      text.Fold(email),
		Role:         role,
		Status:       models.UserActive,
		AuthMethod:   models.AuthPassword,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateDisabledUser creates a disabled user.
func (f *Fixtures) CreateDisabledUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()
	u := f.CreateUser(ctx, fullName, email, role)
	if _, err := f.db.Collection("users").UpdateByID(ctx, u.ID,
		map[string]any{"$set": map[string]any{"status": models.UserDisabled}}); err != nil {
		f.t.Fatalf("failed to disable user: %v", err)
	}
	u.Status = models.UserDisabled
	return u
}

// CreateProperty creates a property owned by owner, optionally brokered.
func (f *Fixtures) CreateProperty(ctx context.Context, title, city string, price float64, status string, owner primitive.ObjectID, broker *primitive.ObjectID) models.Property {
	f.t.Helper()
	now := time.Now().UTC()
	p := models.Property{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Address:   "Calle Mayor 1",
		City:      city,
		Type:      "apartment",
		Status:    status,
		Price:     price,
		Bedrooms:  2,
		Bathrooms: 1,
		AreaM2:    70,
		OwnerID:   owner,
		BrokerID:  broker,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "properties", p)
	return p
}

// CreateMaintenance creates a maintenance request on p, optionally assigned.
func (f *Fixtures) CreateMaintenance(ctx context.Context, title, priority, status string, p models.Property, runner *primitive.ObjectID, createdAt time.Time) models.MaintenanceRequest {
	f.t.Helper()
	m := models.MaintenanceRequest{
		ID:            primitive.NewObjectID(),
		Reference:     "MR-" + primitive.NewObjectID().Hex()[16:],
		Title:         title,
		Description:   "<p>" + title + "</p>",
		PropertyID:    p.ID,
		PropertyTitle: p.Title,
		OwnerID:       p.OwnerID,
		BrokerID:      p.BrokerID,
		RequestedByID: p.OwnerID,
		RunnerID:      runner,
		Category:      "plumbing",
		Priority:      priority,
		Status:        status,
		EstimatedCost: 100,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	f.insert(ctx, "maintenance_requests", m)
	return m
}

// CreateTicket creates a support ticket raised by requester.
func (f *Fixtures) CreateTicket(ctx context.Context, subject, priority, status string, requester models.User) models.SupportTicket {
	f.t.Helper()
	now := time.Now().UTC()
	tk := models.SupportTicket{
		ID:            primitive.NewObjectID(),
		Reference:     "TK-" + primitive.NewObjectID().Hex()[16:],
		Subject:       subject,
		RequesterID:   requester.ID,
		Requester:     requester.FullName,
		RequesterRole: requester.Role,
		Category:      "technical",
		Priority:      priority,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.insert(ctx, "support_tickets", tk)
	return tk
}

// Insert stores an arbitrary document for tests that need a shape the
// helpers above don't cover.
func (f *Fixtures) Insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	f.insert(ctx, coll, doc)
}
