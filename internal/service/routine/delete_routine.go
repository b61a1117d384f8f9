package routine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// DeleteRoutine removes a routine definition. Tasks generated from it keep
// their denormalized name and category; the schema detaches their routine
// reference.
func (s *Service) DeleteRoutine(ctx context.Context, input DeleteRoutineInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return err
	}

	routine, err := s.routines.GetByID(ctx, userID, input.RoutineID)
	if err != nil {
		return fmt.Errorf("get routine: %w", err)
	}

	routine.MarkDeleted(s.now())

	u := s.uow.New()
	if err := u.Remove(routine); err != nil {
		return err
	}
	if err := u.Commit(ctx); err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}

	s.log.InfoContext(ctx, "routine deleted",
		slog.String("user_id", userID.String()),
		slog.String("routine_id", routine.ID.String()),
	)
	return nil
}
