package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// UpdateTask applies a partial update to a task.
func (s *Service) UpdateTask(ctx context.Context, input UpdateTaskInput) (*domain.Task, error) {
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

	task.ApplyUpdate(domain.TaskUpdate{
		Name:     input.Name,
		Notes:    input.Notes,
		Category: input.Category,
	}, s.now())

	u := s.uow.New()
	if err := u.Add(task); err != nil {
		return nil, err
	}
	if err := u.Commit(ctx); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.log.InfoContext(ctx, "task updated",
		slog.String("user_id", userID.String()),
		slog.String("task_id", task.ID.String()),
	)

	return task, nil
}
