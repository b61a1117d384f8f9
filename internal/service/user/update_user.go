package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// UpdateUser applies a partial update to the current user's profile and
// notification preferences.
func (s *Service) UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	u.ApplyUpdate(domain.UserUpdate{
		DisplayName:   input.DisplayName,
		Timezone:      input.Timezone,
		NotifyByEmail: input.NotifyByEmail,
		NotifyByPush:  input.NotifyByPush,
	}, s.now())

	work := s.uow.New()
	if err := work.Add(u); err != nil {
		return nil, err
	}
	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.InfoContext(ctx, "user updated",
		slog.String("user_id", userID.String()),
	)
	return u, nil
}
