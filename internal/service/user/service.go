// Package user implements the account profile handlers: reading the current
// user and updating display name, timezone, and notification preferences.
package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/uow"
)

type userRepo interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// Service provides user profile operations.
type Service struct {
	users userRepo
	uow   *uow.Factory
	now   func() time.Time
	log   *slog.Logger
}

// NewService creates a new User service.
func NewService(log *slog.Logger, users userRepo, factory *uow.Factory) *Service {
	return &Service{
		users: users,
		uow:   factory,
		now:   func() time.Time { return time.Now().UTC() },
		log:   log.With("service", "user"),
	}
}
