package user

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/event"
	"github.com/daymate/backend/internal/uow"
	"github.com/daymate/backend/pkg/ctxutil"
	"github.com/daymate/backend/pkg/opt"
)

type mockUserRepo struct {
	getByIDFunc func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type storeCall struct {
	op string
	id uuid.UUID
}

type fakeStore struct {
	calls []storeCall
}

func (s *fakeStore) Insert(_ context.Context, e domain.Entity) error {
	s.calls = append(s.calls, storeCall{op: "insert", id: e.EntityMeta().ID})
	return nil
}

func (s *fakeStore) Update(_ context.Context, e domain.Entity) error {
	s.calls = append(s.calls, storeCall{op: "update", id: e.EntityMeta().ID})
	return nil
}

func (s *fakeStore) Delete(_ context.Context, e domain.Entity) error {
	s.calls = append(s.calls, storeCall{op: "delete", id: e.EntityMeta().ID})
	return nil
}

type fixture struct {
	svc   *Service
	repo  *mockUserRepo
	store *fakeStore
	ctx   context.Context
	user  *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.DiscardHandler)

	u := domain.NewUser("alice@example.com", "Alice", time.Now().UTC())
	u.CollectEvents()

	repo := &mockUserRepo{
		getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.User, error) {
			return u, nil
		},
	}
	store := &fakeStore{}

	stores := uow.NewStoreRegistry()
	stores.Register(domain.EntityTypeUser, store)

	factory := uow.NewFactory(fakeTx{}, stores, event.NewRegistry(log), nil, log)

	return &fixture{
		svc:   NewService(log, repo, factory),
		repo:  repo,
		store: store,
		ctx:   ctxutil.WithUserID(context.Background(), u.ID),
		user:  u,
	}
}

func TestGetUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	got, err := f.svc.GetUser(f.ctx)
	if err != nil {
		t.Fatalf("GetUser: unexpected error: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("Email mismatch: got %q", got.Email)
	}
}

func TestGetUser_Unauthorized(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.GetUser(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got: %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	got, err := f.svc.UpdateUser(f.ctx, UpdateUserInput{
		Timezone:     opt.Of("Europe/Berlin"),
		NotifyByPush: opt.Of(false),
	})
	if err != nil {
		t.Fatalf("UpdateUser: unexpected error: %v", err)
	}

	if got.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone mismatch: got %q", got.Timezone)
	}
	if got.NotifyByPush {
		t.Error("push notifications must be off")
	}
	if !got.NotifyByEmail {
		t.Error("untouched preference must keep its value")
	}
	if got.DisplayName != "Alice" {
		t.Errorf("untouched display name changed: got %q", got.DisplayName)
	}
	if len(f.store.calls) != 1 || f.store.calls[0].op != "update" {
		t.Fatalf("expected one update, got %+v", f.store.calls)
	}
}

func TestUpdateUser_UnknownTimezone(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.UpdateUser(f.ctx, UpdateUserInput{
		Timezone: opt.Of("Mars/Olympus_Mons"),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
	if len(f.store.calls) != 0 {
		t.Error("store must not be touched")
	}
}

func TestUpdateUser_BlankDisplayName(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.UpdateUser(f.ctx, UpdateUserInput{
		DisplayName: opt.Of("   "),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}
