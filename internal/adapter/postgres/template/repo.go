// Package template implements the DayTemplate repository using PostgreSQL.
// Time blocks and default alarms live in JSONB columns, rewritten wholesale
// with the aggregate.
package template

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daymate/backend/internal/adapter/postgres"
	"github.com/daymate/backend/internal/domain"
)

const table = "day_templates"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"id", "user_id", "name", "time_blocks", "alarms", "created_at", "updated_at",
}

type row struct {
	ID         uuid.UUID              `db:"id"`
	UserID     uuid.UUID              `db:"user_id"`
	Name       string                 `db:"name"`
	TimeBlocks []domain.TimeBlock     `db:"time_blocks"`
	Alarms     []domain.TemplateAlarm `db:"alarms"`
	CreatedAt  time.Time              `db:"created_at"`
	UpdatedAt  time.Time              `db:"updated_at"`
}

// Repo provides day template persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new day template repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a template by primary key. Returns domain.ErrNotFound if
// the template does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, templateID uuid.UUID) (*domain.DayTemplate, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"id": templateID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get template query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "day_template", templateID)
	}
	return toDomain(rw), nil
}

// GetDefault returns the user's template, or domain.ErrNotFound when the
// user has none. Each user keeps at most one template.
func (r *Repo) GetDefault(ctx context.Context, userID uuid.UUID) (*domain.DayTemplate, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get default template query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "day_template", userID)
	}
	return toDomain(rw), nil
}

// Insert persists a new template.
func (r *Repo) Insert(ctx context.Context, e domain.Entity) error {
	t, err := asTemplate(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(t.ID, t.UserID, t.Name, jsonSlice(t.TimeBlocks), jsonSlice(t.Alarms),
			t.CreatedAt, t.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert template query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "day_template", t.ID)
	}
	return nil
}

// Update rewrites every mutable column of an existing template.
func (r *Repo) Update(ctx context.Context, e domain.Entity) error {
	t, err := asTemplate(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Update(table).
		Set("name", t.Name).
		Set("time_blocks", jsonSlice(t.TimeBlocks)).
		Set("alarms", jsonSlice(t.Alarms)).
		Set("updated_at", t.UpdatedAt).
		Where(sq.Eq{"id": t.ID, "user_id": t.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update template query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "day_template", t.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("day_template %s: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a template. Days created from it keep their alarm copies.
func (r *Repo) Delete(ctx context.Context, e domain.Entity) error {
	t, err := asTemplate(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Delete(table).
		Where(sq.Eq{"id": t.ID, "user_id": t.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete template query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "day_template", t.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("day_template %s: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

func asTemplate(e domain.Entity) (*domain.DayTemplate, error) {
	t, ok := e.(*domain.DayTemplate)
	if !ok {
		return nil, fmt.Errorf("day_template store: unexpected entity type %s", e.Kind())
	}
	return t, nil
}

func jsonSlice[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func toDomain(rw row) *domain.DayTemplate {
	return &domain.DayTemplate{
		Meta: domain.Meta{
			ID:        rw.ID,
			UserID:    rw.UserID,
			CreatedAt: rw.CreatedAt,
			UpdatedAt: rw.UpdatedAt,
		},
		Name:       rw.Name,
		TimeBlocks: rw.TimeBlocks,
		Alarms:     rw.Alarms,
	}
}
