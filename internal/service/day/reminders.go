package day

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// AddReminder appends a pending reminder to the day.
func (s *Service) AddReminder(ctx context.Context, input AddReminderInput) (*domain.Reminder, error) {
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

	reminder := day.AddReminder(strings.TrimSpace(input.Text), s.now())

	if err := s.commitDay(ctx, day, "reminder added"); err != nil {
		return nil, fmt.Errorf("add reminder: %w", err)
	}
	return reminder, nil
}

// RemoveReminder deletes a reminder from the day.
func (s *Service) RemoveReminder(ctx context.Context, dayID, reminderID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if dayID == uuid.Nil || reminderID == uuid.Nil {
		return domain.NewValidationError("reminder_id", "day_id and reminder_id required")
	}

	day, err := s.days.GetByID(ctx, userID, dayID)
	if err != nil {
		return fmt.Errorf("get day: %w", err)
	}

	if err := day.RemoveReminder(reminderID, s.now()); err != nil {
		return fmt.Errorf("reminder %s: %w", reminderID, err)
	}

	if err := s.commitDay(ctx, day, "reminder removed"); err != nil {
		return fmt.Errorf("remove reminder: %w", err)
	}
	return nil
}

// UpdateReminderStatus transitions a reminder. Setting the status it already
// has commits nothing.
func (s *Service) UpdateReminderStatus(ctx context.Context, input ReminderStatusInput) (*domain.Day, error) {
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

	if err := day.UpdateReminderStatus(input.ReminderID, input.Status, s.now()); err != nil {
		return nil, fmt.Errorf("reminder %s: %w", input.ReminderID, err)
	}

	if err := s.commitDay(ctx, day, "reminder status updated"); err != nil {
		return nil, fmt.Errorf("update reminder status: %w", err)
	}
	return day, nil
}
