package seed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	contractstore "github.com/rent360/rent360/internal/app/store/contracts"
	maintenancestore "github.com/rent360/rent360/internal/app/store/maintenance"
	paymentstore "github.com/rent360/rent360/internal/app/store/payments"
	propertystore "github.com/rent360/rent360/internal/app/store/properties"
	ratingstore "github.com/rent360/rent360/internal/app/store/ratings"
	tenantstore "github.com/rent360/rent360/internal/app/store/tenants"
	ticketstore "github.com/rent360/rent360/internal/app/store/tickets"
	userstore "github.com/rent360/rent360/internal/app/store/users"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

// maxParallel bounds how many collections are filled at once.
const maxParallel = 4

// Sink is the slice of a store Apply needs.
type Sink[T any] interface {
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, docs []T) error
}

// Stores names a sink per collection.
type Stores struct {
	Users       Sink[models.User]
	Properties  Sink[models.Property]
	Tenants     Sink[models.Tenant]
	Contracts   Sink[models.Contract]
	Payments    Sink[models.Payment]
	Maintenance Sink[models.MaintenanceRequest]
	Ratings     Sink[models.Rating]
	Tickets     Sink[models.SupportTicket]
}

// StoresFor returns the Mongo-backed stores for db.
func StoresFor(db *mongo.Database) Stores {
	return Stores{
		Users:       userstore.New(db),
		Properties:  propertystore.New(db),
		Tenants:     tenantstore.New(db),
		Contracts:   contractstore.New(db),
		Payments:    paymentstore.New(db),
		Maintenance: maintenancestore.New(db),
		Ratings:     ratingstore.New(db),
		Tickets:     ticketstore.New(db),
	}
}

// Summary reports what Apply did per collection.
type Summary struct {
	Inserted map[string]int // collection -> documents written
	Skipped  []string       // collections left alone because they had data
}

var errNoPassword = errors.New("demo data has password users but no password")

// Apply writes d into every empty collection. A collection that already
// holds documents is skipped whole, so running it twice is harmless.
func Apply(ctx context.Context, st Stores, d *Data, logger *zap.Logger) (Summary, error) {
	users, err := withPasswords(d.Users, d.Password)
	if err != nil {
		return Summary{}, err
	}

	var mu sync.Mutex
	sum := Summary{Inserted: make(map[string]int)}
	record := func(name string, n int, skipped bool) {
		mu.Lock()
		defer mu.Unlock()
		if skipped {
			sum.Skipped = append(sum.Skipped, name)
			logger.Info("demo seed skipped non-empty collection", zap.String("collection", name))
			return
		}
		sum.Inserted[name] = n
		logger.Info("demo seed inserted", zap.String("collection", name), zap.Int("count", n))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	fill(g, gctx, userstore.Collection, st.Users, users, record)
	fill(g, gctx, propertystore.Collection, st.Properties, d.Properties, record)
	fill(g, gctx, tenantstore.Collection, st.Tenants, d.Tenants, record)
	fill(g, gctx, contractstore.Collection, st.Contracts, d.Contracts, record)
	fill(g, gctx, paymentstore.Collection, st.Payments, d.Payments, record)
	fill(g, gctx, maintenancestore.Collection, st.Maintenance, d.Maintenance, record)
	fill(g, gctx, ratingstore.Collection, st.Ratings, d.Ratings, record)
	fill(g, gctx, ticketstore.Collection, st.Tickets, d.Tickets, record)

	if err := g.Wait(); err != nil {
		return sum, err
	}
	sort.Strings(sum.Skipped)
	return sum, nil
}

func fill[T any](g *errgroup.Group, ctx context.Context, name string, sink Sink[T], docs []T, record func(string, int, bool)) {
	if sink == nil || len(docs) == 0 {
		return
	}
	g.Go(func() error {
		n, err := sink.Count(ctx)
		if err != nil {
			return fmt.Errorf("count %s: %w", name, err)
		}
		if n > 0 {
			record(name, 0, true)
			return nil
		}
		if err := sink.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
		record(name, len(docs), false)
		return nil
	})
}

// withPasswords copies users, giving every password account the same hash.
// The hash is computed once.
func withPasswords(users []models.User, password string) ([]models.User, error) {
	out := make([]models.User, len(users))
	copy(out, users)

	var hash []byte
	for i := range out {
		if out[i].AuthMethod != models.AuthPassword {
			continue
		}
		if hash == nil {
			if password == "" {
				return nil, errNoPassword
			}
			var err error
			if hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err != nil {
				return nil, fmt.Errorf("hash demo password: %w", err)
			}
		}
		out[i].PasswordHash = string(hash)
	}
	return out, nil
}
