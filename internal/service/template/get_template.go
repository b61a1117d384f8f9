package template

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// DefaultName is the name given to a template created on first access.
const DefaultName = "default"

// GetTemplate returns the user's day template, creating an empty default on
// first access.
func (s *Service) GetTemplate(ctx context.Context) (*domain.DayTemplate, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	existing, err := s.templates.GetDefault(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get default template: %w", err)
	}

	tpl, err := s.createDefault(ctx, userID)
	if err == nil {
		return tpl, nil
	}

	// Lost the race against a concurrent first access.
	if errors.Is(err, domain.ErrAlreadyExists) {
		return s.templates.GetDefault(ctx, userID)
	}
	return nil, err
}

func (s *Service) createDefault(ctx context.Context, userID uuid.UUID) (*domain.DayTemplate, error) {
	tpl := domain.NewDayTemplate(userID, DefaultName, s.now())

	u := s.uow.New()
	if err := u.Create(tpl); err != nil {
		return nil, err
	}
	if err := u.Commit(ctx); err != nil {
		return nil, fmt.Errorf("create default template: %w", err)
	}

	s.log.InfoContext(ctx, "default template created",
		slog.String("user_id", userID.String()),
		slog.String("template_id", tpl.ID.String()),
	)
	return tpl, nil
}
