package routine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// CreateRoutine defines a new recurring task template for the current user.
func (s *Service) CreateRoutine(ctx context.Context, input CreateRoutineInput) (*domain.Routine, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	routine := domain.NewRoutine(userID, strings.TrimSpace(input.Name), input.Weekdays, s.now())
	routine.Category = trimOrNil(input.Category)

	u := s.uow.New()
	if err := u.Create(routine); err != nil {
		return nil, err
	}
	if err := u.Commit(ctx); err != nil {
		return nil, fmt.Errorf("create routine: %w", err)
	}

	s.log.InfoContext(ctx, "routine created",
		slog.String("user_id", userID.String()),
		slog.String("routine_id", routine.ID.String()),
		slog.String("name", routine.Name),
	)
	return routine, nil
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
