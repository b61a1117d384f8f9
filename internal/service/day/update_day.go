package day

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// UpdateDay applies a partial update to a day's own fields.
func (s *Service) UpdateDay(ctx context.Context, input UpdateDayInput) (*domain.Day, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	day, err := s.days.GetByID(ctx, userID, input.DayID)
	if err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}

	day.ApplyUpdate(domain.DayUpdate{Notes: input.Notes}, s.now())

	if err := s.commitDay(ctx, day, "day updated"); err != nil {
		return nil, fmt.Errorf("update day: %w", err)
	}
	return day, nil
}

// UnscheduleDay marks the day unscheduled so sweeps and views skip it.
// Already-unscheduled days pass through unchanged.
func (s *Service) UnscheduleDay(ctx context.Context, dayID uuid.UUID) (*domain.Day, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if dayID == uuid.Nil {
		return nil, domain.NewValidationError("day_id", "required")
	}

	day, err := s.days.GetByID(ctx, userID, dayID)
	if err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}

	day.Unschedule(s.now())

	if err := s.commitDay(ctx, day, "day unscheduled"); err != nil {
		return nil, fmt.Errorf("unschedule day: %w", err)
	}
	return day, nil
}
