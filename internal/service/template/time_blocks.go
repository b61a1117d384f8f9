package template

import (
	"context"
	"fmt"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// AddTimeBlock reserves an interval on the template for a routine. Overlap
// with an existing block is a ValidationError naming the conflict.
func (s *Service) AddTimeBlock(ctx context.Context, input AddTimeBlockInput) (*domain.DayTemplate, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	tpl, err := s.templates.GetByID(ctx, userID, input.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}

	block := domain.TimeBlock{
		RoutineID: input.RoutineID,
		Start:     input.Start,
		End:       input.End,
	}
	if err := tpl.AddTimeBlock(block, s.now()); err != nil {
		return nil, err
	}

	if err := s.commitTemplate(ctx, tpl, "time block added"); err != nil {
		return nil, fmt.Errorf("add time block: %w", err)
	}
	return tpl, nil
}

// RemoveTimeBlock deletes the block matching (routine, start).
func (s *Service) RemoveTimeBlock(ctx context.Context, input RemoveTimeBlockInput) (*domain.DayTemplate, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	tpl, err := s.templates.GetByID(ctx, userID, input.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}

	if err := tpl.RemoveTimeBlock(input.RoutineID, input.Start, s.now()); err != nil {
		return nil, fmt.Errorf("time block for routine %s: %w", input.RoutineID, err)
	}

	if err := s.commitTemplate(ctx, tpl, "time block removed"); err != nil {
		return nil, fmt.Errorf("remove time block: %w", err)
	}
	return tpl, nil
}
