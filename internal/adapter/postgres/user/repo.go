// Package user implements the User repository using PostgreSQL.
package user

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

const table = "users"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"id", "email", "display_name", "timezone", "notify_by_email",
	"notify_by_push", "created_at", "updated_at",
}

type row struct {
	ID            uuid.UUID `db:"id"`
	Email         string    `db:"email"`
	DisplayName   string    `db:"display_name"`
	Timezone      string    `db:"timezone"`
	NotifyByEmail bool      `db:"notify_by_email"`
	NotifyByPush  bool      `db:"notify_by_push"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "user", userID)
	}
	return toDomain(rw), nil
}

// GetByEmail returns a user by email, or domain.ErrNotFound.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user by email query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return toDomain(rw), nil
}

// Insert persists a new user. The unique email constraint maps to
// domain.ErrAlreadyExists on conflict.
func (r *Repo) Insert(ctx context.Context, e domain.Entity) error {
	u, err := asUser(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(u.ID, u.Email, u.DisplayName, u.Timezone, u.NotifyByEmail,
			u.NotifyByPush, u.CreatedAt, u.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "user", u.ID)
	}
	return nil
}

// Update rewrites every mutable column of an existing user.
func (r *Repo) Update(ctx context.Context, e domain.Entity) error {
	u, err := asUser(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Update(table).
		Set("display_name", u.DisplayName).
		Set("timezone", u.Timezone).
		Set("notify_by_email", u.NotifyByEmail).
		Set("notify_by_push", u.NotifyByPush).
		Set("updated_at", u.UpdatedAt).
		Where(sq.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "user", u.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", u.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a user; owned rows cascade in the schema.
func (r *Repo) Delete(ctx context.Context, e domain.Entity) error {
	u, err := asUser(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Delete(table).
		Where(sq.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete user query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "user", u.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", u.ID, domain.ErrNotFound)
	}
	return nil
}

func asUser(e domain.Entity) (*domain.User, error) {
	u, ok := e.(*domain.User)
	if !ok {
		return nil, fmt.Errorf("user store: unexpected entity type %s", e.Kind())
	}
	return u, nil
}

func toDomain(rw row) *domain.User {
	return &domain.User{
		Meta: domain.Meta{
			ID:        rw.ID,
			UserID:    rw.ID,
			CreatedAt: rw.CreatedAt,
			UpdatedAt: rw.UpdatedAt,
		},
		Email:         rw.Email,
		DisplayName:   rw.DisplayName,
		Timezone:      rw.Timezone,
		NotifyByEmail: rw.NotifyByEmail,
		NotifyByPush:  rw.NotifyByPush,
	}
}
