// internal/app/features/profile/handler.go
package profile

import (
	uierrors "github.com/rent360/rent360/internal/app/features/errors"
	loginstore "github.com/rent360/rent360/internal/app/store/logins"
	userstore "github.com/rent360/rent360/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// recentLogins is how many sign-ins the profile page lists.
const recentLogins = 5

// Handler owns the profile page and password change.
type Handler struct {
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Users  *userstore.Store
	Logins *loginstore.Store
}

// NewHandler constructs a Handler bound to the given Mongo database and logger.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:    logger,
		ErrLog: errLog,
		Users:  userstore.New(db),
		Logins: loginstore.New(db),
	}
}
