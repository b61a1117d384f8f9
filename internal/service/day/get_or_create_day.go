package day

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// GetOrCreateDay returns the user's day for a calendar date, creating it on
// first access. When the user has a day template, the fresh day inherits its
// default alarms.
func (s *Service) GetOrCreateDay(ctx context.Context, date time.Time) (*domain.Day, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if date.IsZero() {
		return nil, domain.NewValidationError("date", "required")
	}

	existing, err := s.days.GetByDate(ctx, userID, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get day by date: %w", err)
	}

	day, err := s.createDay(ctx, userID, date)
	if err == nil {
		return day, nil
	}

	// Lost the race against a concurrent first access: the (user, date)
	// unique constraint fired. The other writer's day is the day.
	if errors.Is(err, domain.ErrAlreadyExists) {
		return s.days.GetByDate(ctx, userID, date)
	}
	return nil, err
}

func (s *Service) createDay(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.Day, error) {
	now := s.now()

	var day *domain.Day
	tpl, err := s.templates.GetDefault(ctx, userID)
	switch {
	case err == nil:
		day = domain.NewDayFromTemplate(userID, date, tpl, now)
	case errors.Is(err, domain.ErrNotFound):
		day = domain.NewDay(userID, date, now)
	default:
		return nil, fmt.Errorf("get default template: %w", err)
	}

	u := s.uow.New()
	if err := u.Create(day); err != nil {
		return nil, err
	}
	if err := u.Commit(ctx); err != nil {
		return nil, fmt.Errorf("create day: %w", err)
	}

	s.log.InfoContext(ctx, "day created",
		slog.String("user_id", userID.String()),
		slog.String("day_id", day.ID.String()),
		slog.String("date", day.Date.Format("2006-01-02")),
		slog.Bool("from_template", day.TemplateID != nil),
	)
	return day, nil
}

// GetDay returns a day by ID.
func (s *Service) GetDay(ctx context.Context, dayID uuid.UUID) (*domain.Day, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	day, err := s.days.GetByID(ctx, userID, dayID)
	if err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}
	return day, nil
}
