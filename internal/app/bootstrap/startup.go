// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/rent360/rent360/internal/app/resources"
	"github.com/rent360/rent360/internal/app/seed"
	paymentstore "github.com/rent360/rent360/internal/app/store/payments"
	userstore "github.com/rent360/rent360/internal/app/store/users"
	"github.com/rent360/rent360/internal/app/system/ratelimit"
	"github.com/rent360/rent360/internal/app/system/timeouts"
	"github.com/rent360/rent360/internal/app/system/workers"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It loads
// the shared templates, applies timeout overrides and the trusted proxy
// list, bootstraps the admin account, optionally seeds the demo portfolio
// and starts the overdue sweep.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeout overrides applied", zap.Int("count", n))
	}

	ratelimit.SetTrustedProxies(appCfg.TrustedProxies)
	if n := len(appCfg.TrustedProxies); n > 0 {
		logger.Info("trusting forwarding headers from proxies", zap.Int("networks", n))
	}

	db := deps.Rent360MongoDatabase

	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, db, appCfg.AdminEmail, logger); err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
	}

	if appCfg.SeedDemoData {
		if err := seedDemoData(ctx, db, logger); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	if appCfg.OverdueSweepInterval > 0 {
		overdueSweep = workers.NewOverdueSweep(paymentstore.NewOverdueMarker(db, logger), logger, appCfg.OverdueSweepInterval)
		overdueSweep.Start()
	}
	return nil
}

// overdueSweep is started by Startup and stopped by Shutdown.
var overdueSweep *workers.OverdueSweep

// ensureAdmin makes sure email belongs to an active admin. An existing
// account is promoted and re-enabled; a missing one is created for Google
// sign-in.
func ensureAdmin(ctx context.Context, db *mongo.Database, email string, logger *zap.Logger) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	users := userstore.New(db)
	u, err := users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, userstore.ErrNotFound):
		created, err := users.Create(ctx, models.User{
			FullName: "Administrator",
			Email:    email,
			Role:     models.RoleAdmin,
		}, "")
		if err != nil {
			return err
		}
		logger.Info("created admin account", zap.String("user_id", created.ID.Hex()), zap.String("email", created.Email))
		return nil
	case err != nil:
		return err
	}

	if u.Role == models.RoleAdmin && u.Status == models.UserActive {
		return nil
	}

	_, err = db.Collection(userstore.Collection).UpdateByID(ctx, u.ID, bson.M{"$set": bson.M{
		"role":       models.RoleAdmin,
		"status":     models.UserActive,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	logger.Info("promoted account to admin",
		zap.String("user_id", u.ID.Hex()),
		zap.String("previous_role", u.Role))
	return nil
}

// seedDemoData loads the embedded portfolio into every empty collection.
func seedDemoData(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	d, err := seed.Load(time.Now())
	if err != nil {
		return err
	}

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Batch())
	defer cancel()

	sum, err := seed.Apply(ctx, seed.StoresFor(db), d, logger)
	if err != nil {
		return err
	}
	logger.Info("demo seed complete",
		zap.Int("collections_filled", len(sum.Inserted)),
		zap.Strings("skipped", sum.Skipped))
	return nil
}
