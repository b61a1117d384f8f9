package routine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// UpdateRoutine applies a partial update to a routine definition. Tasks
// already generated from the routine are never touched.
func (s *Service) UpdateRoutine(ctx context.Context, input UpdateRoutineInput) (*domain.Routine, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	routine, err := s.routines.GetByID(ctx, userID, input.RoutineID)
	if err != nil {
		return nil, fmt.Errorf("get routine: %w", err)
	}

	routine.ApplyUpdate(domain.RoutineUpdate{
		Name:     input.Name,
		Category: input.Category,
		Weekdays: input.Weekdays,
		Active:   input.Active,
	}, s.now())

	u := s.uow.New()
	if err := u.Add(routine); err != nil {
		return nil, err
	}
	if err := u.Commit(ctx); err != nil {
		return nil, fmt.Errorf("update routine: %w", err)
	}

	s.log.InfoContext(ctx, "routine updated",
		slog.String("user_id", userID.String()),
		slog.String("routine_id", routine.ID.String()),
	)
	return routine, nil
}
