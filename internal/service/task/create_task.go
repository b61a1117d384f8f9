package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// CreateTask creates a new task scheduled on a calendar date.
func (s *Service) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	task := domain.NewTask(userID, strings.TrimSpace(input.Name), input.ScheduledOn, now)
	task.Notes = trimOrNil(input.Notes)
	task.Category = trimOrNil(input.Category)

	u := s.uow.New()
	if err := u.Create(task); err != nil {
		return nil, err
	}
	if err := u.Commit(ctx); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.log.InfoContext(ctx, "task created",
		slog.String("user_id", userID.String()),
		slog.String("task_id", task.ID.String()),
		slog.String("scheduled_on", task.ScheduledOn.Format("2006-01-02")),
	)

	return task, nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
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
