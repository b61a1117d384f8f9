// Package audit implements the append-only audit log using PostgreSQL.
// The audit event handler writes here inside the committing transaction, so
// a record exists iff its change does.
package audit

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

const table = "audit_log"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"id", "user_id", "entity_type", "entity_id", "action", "event_kind",
	"changes", "created_at",
}

type row struct {
	ID         uuid.UUID          `db:"id"`
	UserID     uuid.UUID          `db:"user_id"`
	EntityType domain.EntityType  `db:"entity_type"`
	EntityID   *uuid.UUID         `db:"entity_id"`
	Action     domain.AuditAction `db:"action"`
	EventKind  domain.EventKind   `db:"event_kind"`
	Changes    map[string]any     `db:"changes"`
	CreatedAt  time.Time          `db:"created_at"`
}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Insert appends one audit record. There is no update or delete; the log
// is append-only.
func (r *Repo) Insert(ctx context.Context, rec domain.AuditRecord) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	changes := rec.Changes
	if changes == nil {
		changes = map[string]any{}
	}

	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.UserID, rec.EntityType, rec.EntityID, rec.Action,
			rec.EventKind, changes, rec.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert audit record query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "audit_record", rec.ID)
	}
	return nil
}

// GetByEntity returns the change history for one entity, newest first,
// limited to `limit` records.
func (r *Repo) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"entity_type": entityType, "entity_id": entityID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get audit by entity query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get audit records by entity: %w", err)
	}
	return toDomainSlice(rows), nil
}

// GetByUser returns a user's audit records, newest first, with pagination.
func (r *Repo) GetByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get audit by user query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get audit records by user: %w", err)
	}
	return toDomainSlice(rows), nil
}

func toDomainSlice(rows []row) []domain.AuditRecord {
	records := make([]domain.AuditRecord, len(rows))
	for i, rw := range rows {
		records[i] = domain.AuditRecord{
			ID:         rw.ID,
			UserID:     rw.UserID,
			EntityType: rw.EntityType,
			EntityID:   rw.EntityID,
			Action:     rw.Action,
			EventKind:  rw.EventKind,
			Changes:    rw.Changes,
			CreatedAt:  rw.CreatedAt,
		}
	}
	return records
}
