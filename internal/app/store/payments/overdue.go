package paymentstore

import (
	"context"
	"fmt"
	"time"

	tenantstore "github.com/rent360/rent360/internal/app/store/tenants"
	"github.com/rent360/rent360/internal/app/system/txn"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// OverdueMarker moves pending payments past their due date to overdue and
// flags the tenants who owe them, in one transaction where available.
type OverdueMarker struct {
	client   *mongo.Client
	payments *mongo.Collection
	tenants  *mongo.Collection
	log      *zap.Logger
}

func NewOverdueMarker(db *mongo.Database, logger *zap.Logger) *OverdueMarker {
	return &OverdueMarker{
		client:   db.Client(),
		payments: db.Collection(Collection),
		tenants:  db.Collection(tenantstore.Collection),
		log:      logger,
	}
}

// MarkOverdue updates every payment still pending at now whose due date has
// passed and returns how many changed. Tenants linked to an account that owes
// one of them get payment status overdue.
func (m *OverdueMarker) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	var marked int64
	err := txn.Run(ctx, m.client, m.log, func(ctx context.Context) error {
		marked = 0
		filter := bson.M{
			"status":   models.PaymentPending,
			"due_date": bson.M{"$lt": now},
		}

		raw, err := m.payments.Distinct(ctx, "tenant_id", filter)
		if err != nil {
			return fmt.Errorf("find overdue tenants: %w", err)
		}
		if len(raw) == 0 {
			return nil
		}

		res, err := m.payments.UpdateMany(ctx, filter, bson.M{"$set": bson.M{
			"status": models.PaymentStatusOverdue,
		}})
		if err != nil {
			return fmt.Errorf("mark payments overdue: %w", err)
		}
		marked = res.ModifiedCount

		ids := make([]primitive.ObjectID, 0, len(raw))
		for _, v := range raw {
			if id, ok := v.(primitive.ObjectID); ok {
				ids = append(ids, id)
			}
		}
		_, err = m.tenants.UpdateMany(ctx, bson.M{"user_id": bson.M{"$in": ids}}, bson.M{"$set": bson.M{
			"payment_status": models.PaymentOverdue,
			"updated_at":     now.UTC(),
		}})
		if err != nil {
			return fmt.Errorf("flag overdue tenants: %w", err)
		}
		return nil
	})
	return marked, err
}
