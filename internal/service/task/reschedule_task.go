package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// RescheduleTask moves a task to another date. Rescheduling to the same
// date commits nothing.
func (s *Service) RescheduleTask(ctx context.Context, input RescheduleTaskInput) (*domain.Task, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, userID, input.TaskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	task.Reschedule(input.Date, s.now())
	if !task.HasEvents() {
		return task, nil
	}

	u := s.uow.New()
	if err := u.Add(task); err != nil {
		return nil, err
	}
	if err := u.Commit(ctx); err != nil {
		return nil, fmt.Errorf("reschedule task: %w", err)
	}

	s.log.InfoContext(ctx, "task rescheduled",
		slog.String("user_id", userID.String()),
		slog.String("task_id", task.ID.String()),
		slog.String("date", task.ScheduledOn.Format("2006-01-02")),
	)

	return task, nil
}
