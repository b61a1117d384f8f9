package uow

import (
	"log/slog"

	"github.com/daymate/backend/internal/outbox"
)

// Factory mints one unit of work per logical operation, each with its own
// fresh outbox collector. The scheduler is passed explicitly to handlers at
// dispatch time rather than smuggled through the context; a Noop scheduler
// is substituted when no submitter is configured so enqueue calls stay safe
// in tests and CLIs.
type Factory struct {
	tx         TxRunner
	stores     *StoreRegistry
	dispatcher Dispatcher
	submitter  outbox.Submitter
	log        *slog.Logger
}

// NewFactory wires the shared collaborators. submitter may be nil.
func NewFactory(tx TxRunner, stores *StoreRegistry, dispatcher Dispatcher, submitter outbox.Submitter, log *slog.Logger) *Factory {
	return &Factory{
		tx:         tx,
		stores:     stores,
		dispatcher: dispatcher,
		submitter:  submitter,
		log:        log.With("component", "uow"),
	}
}

// New returns an OPEN unit of work for one operation.
func (f *Factory) New() *UnitOfWork {
	var scheduler outbox.Scheduler = outbox.Noop{}
	if f.submitter != nil {
		scheduler = outbox.NewCollector(f.submitter, f.log)
	}
	return &UnitOfWork{
		tx:         f.tx,
		stores:     f.stores,
		dispatcher: f.dispatcher,
		scheduler:  scheduler,
		log:        f.log,
		state:      StateOpen,
	}
}
