package day

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// AddBrainDumpItem captures a thought onto the day. The emitted event
// triggers background classification after commit.
func (s *Service) AddBrainDumpItem(ctx context.Context, input AddBrainDumpItemInput) (*domain.BrainDumpItem, error) {
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

	item := day.AddBrainDumpItem(strings.TrimSpace(input.Text), s.now())

	if err := s.commitDay(ctx, day, "brain dump item added"); err != nil {
		return nil, fmt.Errorf("add brain dump item: %w", err)
	}
	return item, nil
}

// RemoveBrainDumpItem deletes an item from the day.
func (s *Service) RemoveBrainDumpItem(ctx context.Context, dayID, itemID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if dayID == uuid.Nil || itemID == uuid.Nil {
		return domain.NewValidationError("item_id", "day_id and item_id required")
	}

	day, err := s.days.GetByID(ctx, userID, dayID)
	if err != nil {
		return fmt.Errorf("get day: %w", err)
	}

	if err := day.RemoveBrainDumpItem(itemID, s.now()); err != nil {
		return fmt.Errorf("brain dump item %s: %w", itemID, err)
	}

	if err := s.commitDay(ctx, day, "brain dump item removed"); err != nil {
		return fmt.Errorf("remove brain dump item: %w", err)
	}
	return nil
}

// UpdateBrainDumpItemStatus transitions an item.
func (s *Service) UpdateBrainDumpItemStatus(ctx context.Context, input BrainDumpStatusInput) (*domain.Day, error) {
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

	if err := day.UpdateBrainDumpItemStatus(input.ItemID, input.Status, s.now()); err != nil {
		return nil, fmt.Errorf("brain dump item %s: %w", input.ItemID, err)
	}

	if err := s.commitDay(ctx, day, "brain dump item status updated"); err != nil {
		return nil, fmt.Errorf("update brain dump item status: %w", err)
	}
	return day, nil
}

// ClassifyBrainDumpItem records a classification verdict: the item's type is
// set and its status moves to PROCESSED. The background processor calls this
// with the language model's verdict; users calling it manually sort the item
// themselves.
func (s *Service) ClassifyBrainDumpItem(ctx context.Context, input ClassifyBrainDumpItemInput) (*domain.Day, error) {
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

	now := s.now()
	if err := day.UpdateBrainDumpItemType(input.ItemID, input.Type, now); err != nil {
		return nil, fmt.Errorf("brain dump item %s: %w", input.ItemID, err)
	}
	if err := day.UpdateBrainDumpItemStatus(input.ItemID, domain.BrainDumpStatusProcessed, now); err != nil {
		return nil, fmt.Errorf("brain dump item %s: %w", input.ItemID, err)
	}

	if err := s.commitDay(ctx, day, "brain dump item classified"); err != nil {
		return nil, fmt.Errorf("classify brain dump item: %w", err)
	}
	return day, nil
}
