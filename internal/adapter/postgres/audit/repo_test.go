package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daymate/backend/internal/adapter/postgres/audit"
	"github.com/daymate/backend/internal/adapter/postgres/testhelper"
	"github.com/daymate/backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*audit.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return audit.New(pool), pool
}

func newRecord(userID uuid.UUID, entityID uuid.UUID, kind domain.EventKind, action domain.AuditAction, createdAt time.Time) domain.AuditRecord {
	return domain.AuditRecord{
		ID:         uuid.New(),
		UserID:     userID,
		EntityType: domain.EntityTypeTask,
		EntityID:   &entityID,
		Action:     action,
		EventKind:  kind,
		Changes:    map[string]any{"name": "write report"},
		CreatedAt:  createdAt,
	}
}

func TestRepo_Insert_AndGetByEntity(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	entityID := uuid.New()
	base := time.Now().UTC().Truncate(time.Microsecond)

	created := newRecord(user.ID, entityID, domain.EventTaskCreated, domain.AuditActionCreate, base)
	updated := newRecord(user.ID, entityID, domain.EventTaskUpdated, domain.AuditActionUpdate, base.Add(time.Second))

	if err := repo.Insert(ctx, created); err != nil {
		t.Fatalf("Insert[1]: unexpected error: %v", err)
	}
	if err := repo.Insert(ctx, updated); err != nil {
		t.Fatalf("Insert[2]: unexpected error: %v", err)
	}

	got, err := repo.GetByEntity(ctx, domain.EntityTypeTask, entityID, 10)
	if err != nil {
		t.Fatalf("GetByEntity: unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}

	// Newest first.
	if got[0].ID != updated.ID {
		t.Errorf("expected newest record first: got %s, want %s", got[0].ID, updated.ID)
	}
	if got[1].ID != created.ID {
		t.Errorf("expected oldest record last: got %s, want %s", got[1].ID, created.ID)
	}

	if got[1].Action != domain.AuditActionCreate {
		t.Errorf("Action mismatch: got %s, want %s", got[1].Action, domain.AuditActionCreate)
	}
	if got[1].EventKind != domain.EventTaskCreated {
		t.Errorf("EventKind mismatch: got %s, want %s", got[1].EventKind, domain.EventTaskCreated)
	}
	if got[1].EntityID == nil || *got[1].EntityID != entityID {
		t.Errorf("EntityID mismatch: got %v, want %s", got[1].EntityID, entityID)
	}
	if got[1].Changes["name"] != "write report" {
		t.Errorf("Changes mismatch: got %v", got[1].Changes)
	}
}

func TestRepo_Insert_NilChanges(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	entityID := uuid.New()

	rec := newRecord(user.ID, entityID, domain.EventTaskPunted, domain.AuditActionUpdate, time.Now().UTC())
	rec.Changes = nil

	if err := repo.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert: unexpected error: %v", err)
	}

	got, err := repo.GetByEntity(ctx, domain.EntityTypeTask, entityID, 1)
	if err != nil {
		t.Fatalf("GetByEntity: unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Changes == nil {
		t.Error("expected empty changes map, got nil")
	}
	if len(got[0].Changes) != 0 {
		t.Errorf("expected no change keys, got %v", got[0].Changes)
	}
}

func TestRepo_GetByEntity_RespectsLimit(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	entityID := uuid.New()
	base := time.Now().UTC().Truncate(time.Microsecond)

	for i := range 5 {
		rec := newRecord(user.ID, entityID, domain.EventTaskUpdated, domain.AuditActionUpdate, base.Add(time.Duration(i)*time.Second))
		if err := repo.Insert(ctx, rec); err != nil {
			t.Fatalf("Insert[%d]: unexpected error: %v", i, err)
		}
	}

	got, err := repo.GetByEntity(ctx, domain.EntityTypeTask, entityID, 3)
	if err != nil {
		t.Fatalf("GetByEntity: unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if !got[0].CreatedAt.After(got[2].CreatedAt) {
		t.Error("expected newest-first ordering")
	}
}

func TestRepo_GetByUser_Pagination(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	base := time.Now().UTC().Truncate(time.Microsecond)

	for i := range 4 {
		rec := newRecord(user.ID, uuid.New(), domain.EventTaskCreated, domain.AuditActionCreate, base.Add(time.Duration(i)*time.Second))
		if err := repo.Insert(ctx, rec); err != nil {
			t.Fatalf("Insert[%d]: unexpected error: %v", i, err)
		}
	}
	// Another user's record must not leak in.
	if err := repo.Insert(ctx, newRecord(other.ID, uuid.New(), domain.EventTaskCreated, domain.AuditActionCreate, base)); err != nil {
		t.Fatalf("Insert other user: unexpected error: %v", err)
	}

	page1, err := repo.GetByUser(ctx, user.ID, 3, 0)
	if err != nil {
		t.Fatalf("GetByUser page 1: unexpected error: %v", err)
	}
	if len(page1) != 3 {
		t.Fatalf("expected 3 records on page 1, got %d", len(page1))
	}

	page2, err := repo.GetByUser(ctx, user.ID, 3, 3)
	if err != nil {
		t.Fatalf("GetByUser page 2: unexpected error: %v", err)
	}
	if len(page2) != 1 {
		t.Fatalf("expected 1 record on page 2, got %d", len(page2))
	}

	for _, rec := range append(page1, page2...) {
		if rec.UserID != user.ID {
			t.Errorf("record %s belongs to user %s, want %s", rec.ID, rec.UserID, user.ID)
		}
	}
}
