package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// DeleteTask removes a task. The DELETE action is recorded first so the
// audit trail keeps the removal.
func (s *Service) DeleteTask(ctx context.Context, input DeleteTaskInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	task, err := s.tasks.GetByID(ctx, userID, input.TaskID)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}

	if err := task.RecordAction(domain.TaskActionDelete, domain.ActionPayload{}, s.now()); err != nil {
		return err
	}

	u := s.uow.New()
	if err := u.Remove(task); err != nil {
		return err
	}
	if err := u.Commit(ctx); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.log.InfoContext(ctx, "task deleted",
		slog.String("user_id", userID.String()),
		slog.String("task_id", task.ID.String()),
	)

	return nil
}
