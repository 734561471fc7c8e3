// Package txn runs multi-document writes in a MongoDB transaction when the
// deployment supports one.
package txn

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Server codes for "transactions are unavailable here": IllegalOperation
// (20) on a standalone server, InvalidOptions (51) and
// OperationNotSupportedInTransaction (263).
var notSupportedCodes = map[int32]bool{20: true, 51: true, 263: true}

// IsNotSupported reports whether err means the server cannot run
// transactions, as opposed to a transaction that ran and failed.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && notSupportedCodes[ce.Code] {
		return true
	}

	msg := strings.ToLower(err.Error())
	has := func(s string) bool { return strings.Contains(msg, s) }
	switch {
	case has("transaction") && has("replica set"):
		return true
	case has("transaction") && has("session"):
		return true
	case has("session") && has("not supported"):
		return true
	case has("illegal operation") && has("transaction"):
		return true
	}
	return false
}

// Run calls fn inside a transaction on client. When the server cannot run
// transactions fn is called once more without one; the aborted attempt has
// written nothing. fn may be retried on transient errors and must reset any
// state it captures.
func Run(ctx context.Context, client *mongo.Client, logger *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err == nil {
		return nil
	}
	if !IsNotSupported(err) {
		return err
	}

	logger.Debug("transactions unavailable; running without one", zap.Error(err))
	return fn(ctx)
}
