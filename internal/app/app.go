// Package app wires configuration, storage, messaging, and services into
// runnable processes: the scheduler process (cron-driven routine expansion
// and alarm sweeps), the background worker, and one-shot CLI runs.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/daymate/backend/internal/adapter/njs"
	"github.com/daymate/backend/internal/adapter/postgres"
	auditrepo "github.com/daymate/backend/internal/adapter/postgres/audit"
	calendarrepo "github.com/daymate/backend/internal/adapter/postgres/calendar"
	dayrepo "github.com/daymate/backend/internal/adapter/postgres/day"
	routinerepo "github.com/daymate/backend/internal/adapter/postgres/routine"
	taskrepo "github.com/daymate/backend/internal/adapter/postgres/task"
	templaterepo "github.com/daymate/backend/internal/adapter/postgres/template"
	userrepo "github.com/daymate/backend/internal/adapter/postgres/user"
	"github.com/daymate/backend/internal/config"
	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/event"
	"github.com/daymate/backend/internal/gateway"
	calendarservice "github.com/daymate/backend/internal/service/calendar"
	dayservice "github.com/daymate/backend/internal/service/day"
	routineservice "github.com/daymate/backend/internal/service/routine"
	taskservice "github.com/daymate/backend/internal/service/task"
	templateservice "github.com/daymate/backend/internal/service/template"
	userservice "github.com/daymate/backend/internal/service/user"
	"github.com/daymate/backend/internal/uow"
	"github.com/daymate/backend/internal/worker"
)

// container holds every wired collaborator of one process.
type container struct {
	cfg *config.Config
	log *slog.Logger

	pool *pgxpool.Pool
	njs  *njs.Client

	tasks     *taskservice.Service
	days      *dayservice.Service
	routines  *routineservice.Service
	templates *templateservice.Service
	calendar  *calendarservice.Service
	users     *userservice.Service

	model    gateway.LanguageModel
	notifier gateway.Notifier
	sync     gateway.Calendar
}

// wire builds the shared object graph: pool, repos, event registry, unit of
// work factory, gateways, and services.
func wire(ctx context.Context, cfg *config.Config, log *slog.Logger) (*container, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	queue := njs.NewClient(njs.Config{
		URL:        cfg.NATS.URL,
		MaxDeliver: cfg.NATS.MaxDeliver,
		AckWait:    cfg.NATS.AckWait,
		MaxAge:     cfg.NATS.MaxAge,
	}, log)
	if err := queue.Connect(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("nats: %w", err)
	}

	tasks := taskrepo.New(pool)
	days := dayrepo.New(pool)
	routines := routinerepo.New(pool)
	templates := templaterepo.New(pool)
	calendars := calendarrepo.New(pool)
	users := userrepo.New(pool)
	audits := auditrepo.New(pool)

	stores := uow.NewStoreRegistry()
	stores.Register(domain.EntityTypeTask, tasks)
	stores.Register(domain.EntityTypeDay, days)
	stores.Register(domain.EntityTypeRoutine, routines)
	stores.Register(domain.EntityTypeDayTemplate, templates)
	stores.Register(domain.EntityTypeCalendarEntry, calendars)
	stores.Register(domain.EntityTypeUser, users)

	registry := event.NewRegistry(log)
	registry.RegisterAudit(event.NewAuditRecorder(audits))
	registry.RegisterTrigger(event.BrainDumpTrigger{}, domain.EventBrainDumpItemAdded)
	registry.RegisterTrigger(event.NotificationTrigger{},
		domain.EventTaskCompleted, domain.EventDayAlarmTriggered)
	registry.RegisterTrigger(event.CalendarSyncTrigger{},
		domain.EventTaskRescheduled, domain.EventCalendarEntryUpserted)

	factory := uow.NewFactory(postgres.NewTxManager(pool), stores, registry, queue, log)

	var model gateway.LanguageModel
	if cfg.Anthropic.APIKey != "" {
		model = gateway.NewAnthropicModel(cfg.Anthropic.APIKey, cfg.Anthropic.Model, log)
	} else {
		log.Warn("no anthropic api key, brain dump classification disabled")
		model = gateway.StaticModel{Result: gateway.Interpretation{Type: domain.BrainDumpTypeNote}}
	}

	return &container{
		cfg:       cfg,
		log:       log,
		pool:      pool,
		njs:       queue,
		tasks:     taskservice.NewService(log, tasks, factory),
		days:      dayservice.NewService(log, days, templates, factory),
		routines:  routineservice.NewService(log, routines, tasks, factory),
		templates: templateservice.NewService(log, templates, factory),
		calendar:  calendarservice.NewService(log, calendars, factory),
		users:     userservice.NewService(log, users, factory),
		model:     model,
		notifier:  gateway.NewLogNotifier(log),
		sync:      gateway.NewLogCalendar(log),
	}, nil
}

func (c *container) close() {
	c.njs.Close()
	c.pool.Close()
}

// Run starts the scheduler process: it migrates the database, then drives
// routine expansion and alarm sweeps on their cron specs until ctx is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := NewLogger(cfg.Log)

	log.Info("starting scheduler",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := migrate(ctx, cfg.Database.DSN, log); err != nil {
		return err
	}

	c, err := wire(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.close()

	sched := cron.New()
	_, err = sched.AddFunc(cfg.Scheduler.RoutineExpansionSpec, func() {
		now := time.Now().UTC()
		count, err := c.routines.ExpandAll(ctx, now)
		if err != nil {
			log.Error("routine expansion failed",
				slog.String("error", err.Error()),
				slog.Int("generated", count),
			)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule routine expansion: %w", err)
	}
	_, err = sched.AddFunc(cfg.Scheduler.AlarmSweepSpec, func() {
		now := time.Now().UTC()
		if _, err := c.days.SweepAlarms(ctx, now); err != nil {
			log.Error("alarm sweep failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule alarm sweep: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	<-ctx.Done()
	log.Info("scheduler stopped")
	return nil
}

// RunWorker starts the background worker process: it consumes jobs from the
// stream until ctx is cancelled. Migrations are the scheduler's job; the
// worker assumes the schema is current.
func RunWorker(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := NewLogger(cfg.Log)

	log.Info("starting worker",
		slog.String("version", BuildVersion()),
		slog.Int("concurrency", cfg.Worker.Concurrency),
	)

	c, err := wire(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.close()

	w := worker.New(log, c.njs, c.days, c.calendar, c.model, c.notifier, c.sync).
		WithConcurrency(cfg.Worker.Concurrency)

	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// ExpandRoutinesOnce runs one routine expansion for the given date and
// exits. Used by the one-shot CLI.
func ExpandRoutinesOnce(ctx context.Context, date time.Time) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := NewLogger(cfg.Log)

	c, err := wire(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.close()

	count, err := c.routines.ExpandAll(ctx, date)
	if err != nil {
		return err
	}
	log.Info("routine expansion complete",
		slog.String("date", date.Format("2006-01-02")),
		slog.Int("generated", count),
	)
	return nil
}
