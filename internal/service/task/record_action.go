package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// RecordAction applies an action (COMPLETE, PUNT, SNOOZE, ...) to a task's
// state machine. Actions that change nothing commit nothing.
func (s *Service) RecordAction(ctx context.Context, input RecordActionInput) (*domain.Task, error) {
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

	err = task.RecordAction(input.Action, domain.ActionPayload{
		SnoozedUntil: input.SnoozedUntil,
		Note:         input.Note,
	}, s.now())
	if err != nil {
		return nil, err
	}

	// An idempotent action (COMPLETE on COMPLETE) leaves no events behind;
	// skip the round trip.
	if !task.HasEvents() {
		return task, nil
	}

	u := s.uow.New()
	if err := u.Add(task); err != nil {
		return nil, err
	}
	if err := u.Commit(ctx); err != nil {
		return nil, fmt.Errorf("record task action: %w", err)
	}

	s.log.InfoContext(ctx, "task action recorded",
		slog.String("user_id", userID.String()),
		slog.String("task_id", task.ID.String()),
		slog.String("action", input.Action.String()),
		slog.String("status", task.Status.String()),
	)

	return task, nil
}
