package routine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// ExpandRoutines generates tasks for every routine of the current user that
// is due on the date. Generation is idempotent: routines that already have a
// task for the date are skipped. Returns the tasks generated by this call.
func (s *Service) ExpandRoutines(ctx context.Context, date time.Time) ([]*domain.Task, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if date.IsZero() {
		return nil, domain.NewValidationError("date", "required")
	}

	routines, err := s.routines.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}

	generated, err := s.expand(ctx, routines, date)
	if err != nil {
		return nil, err
	}

	if len(generated) > 0 {
		s.log.InfoContext(ctx, "routines expanded",
			slog.String("user_id", userID.String()),
			slog.String("date", domain.DateOf(date).Format("2006-01-02")),
			slog.Int("generated", len(generated)),
		)
	}
	return generated, nil
}

// ExpandAll generates tasks for every active routine across users that is
// due on the date. It is a system operation driven by the scheduler loop;
// there is no acting user. Returns the number of tasks generated.
func (s *Service) ExpandAll(ctx context.Context, date time.Time) (int, error) {
	routines, err := s.routines.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active routines: %w", err)
	}

	generated, err := s.expand(ctx, routines, date)
	if err != nil {
		return len(generated), err
	}

	if len(generated) > 0 {
		s.log.InfoContext(ctx, "all routines expanded",
			slog.String("date", domain.DateOf(date).Format("2006-01-02")),
			slog.Int("routines", len(routines)),
			slog.Int("generated", len(generated)),
		)
	}
	return len(generated), nil
}

// expand walks the routines and materializes one task per due routine,
// committing each in its own unit of work so one failure does not discard
// the rest. A duplicate hit on the (routine, date) constraint means a
// concurrent expander got there first; the routine is skipped.
func (s *Service) expand(ctx context.Context, routines []*domain.Routine, date time.Time) ([]*domain.Task, error) {
	var generated []*domain.Task
	for _, r := range routines {
		if !r.IsDueOn(date) {
			continue
		}

		exists, err := s.tasks.ExistsForRoutineOnDate(ctx, r.UserID, r.ID, date)
		if err != nil {
			return generated, fmt.Errorf("check task for routine %s: %w", r.ID, err)
		}
		if exists {
			continue
		}

		task := r.GenerateTask(date, s.now())

		u := s.uow.New()
		if err := u.Create(task); err != nil {
			return generated, err
		}
		if err := u.Commit(ctx); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				continue
			}
			return generated, fmt.Errorf("generate task for routine %s: %w", r.ID, err)
		}
		generated = append(generated, task)
	}
	return generated, nil
}
