// Package routine implements the Routine repository using PostgreSQL.
package routine

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

const table = "routines"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"id", "user_id", "name", "category", "weekdays", "active",
	"created_at", "updated_at",
}

type row struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Name      string          `db:"name"`
	Category  *string         `db:"category"`
	Weekdays  domain.Weekdays `db:"weekdays"`
	Active    bool            `db:"active"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// Repo provides routine persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new routine repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a routine by primary key. Returns domain.ErrNotFound if
// the routine does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, routineID uuid.UUID) (*domain.Routine, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"id": routineID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get routine query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "routine", routineID)
	}
	return toDomain(rw), nil
}

// ListByUser returns the user's routines ordered by name.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Routine, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list routines query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	return toDomainSlice(rows), nil
}

// ListActive returns every active routine across users, ordered by user.
// The routine expander walks these once per day.
func (r *Repo) ListActive(ctx context.Context) ([]*domain.Routine, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"active": true}).
		OrderBy("user_id ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list active routines query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active routines: %w", err)
	}
	return toDomainSlice(rows), nil
}

// ---------------------------------------------------------------------------
// Write operations (unit-of-work store contract)
// ---------------------------------------------------------------------------

// Insert persists a new routine.
func (r *Repo) Insert(ctx context.Context, e domain.Entity) error {
	rt, err := asRoutine(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(rt.ID, rt.UserID, rt.Name, rt.Category, rt.Weekdays, rt.Active,
			rt.CreatedAt, rt.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert routine query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "routine", rt.ID)
	}
	return nil
}

// Update rewrites every mutable column of an existing routine.
func (r *Repo) Update(ctx context.Context, e domain.Entity) error {
	rt, err := asRoutine(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Update(table).
		Set("name", rt.Name).
		Set("category", rt.Category).
		Set("weekdays", rt.Weekdays).
		Set("active", rt.Active).
		Set("updated_at", rt.UpdatedAt).
		Where(sq.Eq{"id": rt.ID, "user_id": rt.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update routine query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "routine", rt.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("routine %s: %w", rt.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a routine. Generated tasks keep their denormalized copy
// and their routine_id is set NULL by the schema.
func (r *Repo) Delete(ctx context.Context, e domain.Entity) error {
	rt, err := asRoutine(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Delete(table).
		Where(sq.Eq{"id": rt.ID, "user_id": rt.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete routine query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "routine", rt.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("routine %s: %w", rt.ID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func asRoutine(e domain.Entity) (*domain.Routine, error) {
	rt, ok := e.(*domain.Routine)
	if !ok {
		return nil, fmt.Errorf("routine store: unexpected entity type %s", e.Kind())
	}
	return rt, nil
}

func toDomain(rw row) *domain.Routine {
	return &domain.Routine{
		Meta: domain.Meta{
			ID:        rw.ID,
			UserID:    rw.UserID,
			CreatedAt: rw.CreatedAt,
			UpdatedAt: rw.UpdatedAt,
		},
		Name:     rw.Name,
		Category: rw.Category,
		Weekdays: rw.Weekdays,
		Active:   rw.Active,
	}
}

func toDomainSlice(rows []row) []*domain.Routine {
	routines := make([]*domain.Routine, len(rows))
	for i, rw := range rows {
		routines[i] = toDomain(rw)
	}
	return routines
}
