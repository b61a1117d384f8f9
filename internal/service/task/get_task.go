package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// GetTask returns a single task by ID.
func (s *Service) GetTask(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	task, err := s.tasks.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// ListTasks returns a filtered, paginated page of tasks.
func (s *Service) ListTasks(ctx context.Context, input ListTasksInput) (domain.Page[*domain.Task], error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Page[*domain.Task]{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.Page[*domain.Task]{}, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	page, err := s.tasks.Find(ctx, userID, domain.TaskFilter{
		Status:      input.Status,
		ScheduledOn: input.ScheduledOn,
		RoutineID:   input.RoutineID,
		Limit:       limit,
		Offset:      input.Offset,
	})
	if err != nil {
		return domain.Page[*domain.Task]{}, fmt.Errorf("list tasks: %w", err)
	}
	return page, nil
}

// ListTasksByDate returns every task scheduled on the date.
func (s *Service) ListTasksByDate(ctx context.Context, date time.Time) ([]*domain.Task, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	tasks, err := s.tasks.ListByDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("list tasks by date: %w", err)
	}
	return tasks, nil
}
