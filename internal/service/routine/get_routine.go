package routine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// GetRoutine returns a routine by ID.
func (s *Service) GetRoutine(ctx context.Context, routineID uuid.UUID) (*domain.Routine, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	routine, err := s.routines.GetByID(ctx, userID, routineID)
	if err != nil {
		return nil, fmt.Errorf("get routine: %w", err)
	}
	return routine, nil
}

// ListRoutines returns every routine of the current user, ordered by name.
func (s *Service) ListRoutines(ctx context.Context) ([]*domain.Routine, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	routines, err := s.routines.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	return routines, nil
}
