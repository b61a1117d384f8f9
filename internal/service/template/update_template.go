package template

import (
	"context"
	"fmt"
	"strings"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// UpdateTemplate renames the template. Renaming to the current name commits
// nothing.
func (s *Service) UpdateTemplate(ctx context.Context, input UpdateTemplateInput) (*domain.DayTemplate, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	tpl, err := s.templates.GetByID(ctx, userID, input.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}

	tpl.Rename(strings.TrimSpace(input.Name), s.now())

	if err := s.commitTemplate(ctx, tpl, "template renamed"); err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}
	return tpl, nil
}
