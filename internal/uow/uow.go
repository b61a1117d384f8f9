// Package uow implements the transactional boundary of a logical operation.
// A unit of work tracks the entities to create, update, and delete, persists
// them in one database transaction, and only then drains their accumulated
// events into the dispatcher and flushes the post-commit outbox.
package uow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/outbox"
)

var (
	// ErrNotOpen is returned when an operation requires an OPEN unit of work.
	ErrNotOpen = errors.New("unit of work is not open")

	// ErrFlushFailed marks a commit whose data is durable but whose outbox
	// flush did not finish. Callers may log and move on; the entities are
	// committed.
	ErrFlushFailed = errors.New("outbox flush failed after commit")
)

// State tracks the unit-of-work lifecycle.
type State int

const (
	StateOpen State = iota
	StateCommitting
	StateCommitted
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateCommitting:
		return "COMMITTING"
	case StateCommitted:
		return "COMMITTED"
	case StateRolledBack:
		return "ROLLED_BACK"
	default:
		return "UNKNOWN"
	}
}

// TxRunner runs a function inside one database transaction. The transaction
// travels in the context so stores called within join it.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store persists one entity type. Implementations resolve the active
// transaction from the context.
type Store interface {
	Insert(ctx context.Context, e domain.Entity) error
	Update(ctx context.Context, e domain.Entity) error
	Delete(ctx context.Context, e domain.Entity) error
}

// Dispatcher fans drained events out to registered handlers.
type Dispatcher interface {
	Dispatch(ctx context.Context, events []domain.Event, sch outbox.Scheduler)
}

// StoreRegistry maps entity types to their stores. Registration happens once
// at wiring time; lookups at commit time.
type StoreRegistry struct {
	stores map[domain.EntityType]Store
}

// NewStoreRegistry creates an empty registry.
func NewStoreRegistry() *StoreRegistry {
	return &StoreRegistry{stores: make(map[domain.EntityType]Store)}
}

// Register binds a store to an entity type, replacing any previous binding.
func (r *StoreRegistry) Register(t domain.EntityType, s Store) {
	r.stores[t] = s
}

func (r *StoreRegistry) storeFor(t domain.EntityType) (Store, error) {
	s, ok := r.stores[t]
	if !ok {
		return nil, fmt.Errorf("no store registered for entity type %s", t)
	}
	return s, nil
}

type opKind int

const (
	opCreate opKind = iota
	opUpdate
	opDelete
)

type registration struct {
	op     opKind
	entity domain.Entity
}

// UnitOfWork is ephemeral: one per logical operation, never shared between
// goroutines. Entities handed to it are owned by it until Commit or
// Rollback returns; callers must not keep mutating them in between.
type UnitOfWork struct {
	tx         TxRunner
	stores     *StoreRegistry
	dispatcher Dispatcher
	scheduler  outbox.Scheduler
	log        *slog.Logger

	state State
	regs  []registration
}

// Create registers an entity for insertion.
func (u *UnitOfWork) Create(e domain.Entity) error { return u.register(opCreate, e) }

// Add registers an entity for update.
func (u *UnitOfWork) Add(e domain.Entity) error { return u.register(opUpdate, e) }

// Remove registers an entity for deletion.
func (u *UnitOfWork) Remove(e domain.Entity) error { return u.register(opDelete, e) }

func (u *UnitOfWork) register(op opKind, e domain.Entity) error {
	if u.state != StateOpen {
		return fmt.Errorf("register %s: %w (state %s)", e.Kind(), ErrNotOpen, u.state)
	}
	u.regs = append(u.regs, registration{op: op, entity: e})
	return nil
}

// Commit persists every registered entity in one transaction, then drains
// and dispatches their events in registration order, then flushes the
// outbox.
//
// A persistence failure rolls everything back; no handler sees any event.
// A handler failure is swallowed by the dispatcher. A flush failure leaves
// the unit of work COMMITTED and returns ErrFlushFailed: the data is
// durable, only background work is missing (at-least-once, retried by the
// caller or not at all).
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.state != StateOpen {
		return fmt.Errorf("commit: %w (state %s)", ErrNotOpen, u.state)
	}
	u.state = StateCommitting

	err := u.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, reg := range u.regs {
			if err := u.persist(txCtx, reg); err != nil {
				return err
			}
		}
		// Entities are persisted; dispatch inside the transaction so audit
		// records commit atomically with the change. Trigger handlers only
		// enqueue on the scheduler, nothing leaves the process yet.
		u.dispatcher.Dispatch(txCtx, u.drainEvents(), u.scheduler)
		return nil
	})
	if err != nil {
		u.state = StateRolledBack
		return fmt.Errorf("unit of work commit: %w", err)
	}
	u.state = StateCommitted

	if err := u.scheduler.Flush(ctx); err != nil {
		u.log.Warn("post-commit flush incomplete",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %v", ErrFlushFailed, err)
	}
	return nil
}

// Rollback discards all registered entities without touching storage.
// No events are dispatched and nothing is flushed.
func (u *UnitOfWork) Rollback() error {
	if u.state != StateOpen {
		return fmt.Errorf("rollback: %w (state %s)", ErrNotOpen, u.state)
	}
	u.state = StateRolledBack
	u.regs = nil
	return nil
}

// State reports the current lifecycle state.
func (u *UnitOfWork) State() State { return u.state }

func (u *UnitOfWork) persist(ctx context.Context, reg registration) error {
	store, err := u.stores.storeFor(reg.entity.Kind())
	if err != nil {
		return err
	}
	switch reg.op {
	case opCreate:
		err = store.Insert(ctx, reg.entity)
	case opUpdate:
		err = store.Update(ctx, reg.entity)
	case opDelete:
		err = store.Delete(ctx, reg.entity)
	}
	if err != nil {
		return fmt.Errorf("persist %s %s: %w", reg.entity.Kind(), reg.entity.EntityMeta().ID, err)
	}
	return nil
}

// drainEvents collects events entity by entity in registration order. The
// drain-once semantics of the entity base guarantee a retry cannot
// re-dispatch them.
func (u *UnitOfWork) drainEvents() []domain.Event {
	var events []domain.Event
	for _, reg := range u.regs {
		events = append(events, reg.entity.EntityMeta().CollectEvents()...)
	}
	return events
}
