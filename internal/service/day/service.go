// Package day implements command handlers for the Day aggregate: day
// creation on first access, reminders, brain-dump capture, and alarms.
package day

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/uow"
)

type dayRepo interface {
	GetByID(ctx context.Context, userID, dayID uuid.UUID) (*domain.Day, error)
	GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.Day, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Day, error)
}

type templateRepo interface {
	GetDefault(ctx context.Context, userID uuid.UUID) (*domain.DayTemplate, error)
}

// Service provides day operations.
type Service struct {
	days      dayRepo
	templates templateRepo
	uow       *uow.Factory
	now       func() time.Time
	log       *slog.Logger
}

// NewService creates a new Day service.
func NewService(log *slog.Logger, days dayRepo, templates templateRepo, factory *uow.Factory) *Service {
	return &Service{
		days:      days,
		templates: templates,
		uow:       factory,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log.With("service", "day"),
	}
}

// commitDay registers the day for update and commits, skipping the round
// trip when the mutation turned out to be a no-op.
func (s *Service) commitDay(ctx context.Context, d *domain.Day, op string) error {
	if !d.HasEvents() {
		return nil
	}
	u := s.uow.New()
	if err := u.Add(d); err != nil {
		return err
	}
	if err := u.Commit(ctx); err != nil {
		return err
	}
	s.log.InfoContext(ctx, op,
		slog.String("user_id", d.UserID.String()),
		slog.String("day_id", d.ID.String()),
	)
	return nil
}
