// Package gateway defines the narrow protocols to external providers and
// ships log-only defaults so the worker runs without any provider
// configured.
package gateway

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
)

// InterpretRequest asks the language model to classify one captured thought.
type InterpretRequest struct {
	Text string
}

// Interpretation is the model's verdict on a brain-dump item.
type Interpretation struct {
	Type    domain.BrainDumpType
	Summary string
}

// LanguageModel classifies free-form user text.
type LanguageModel interface {
	Interpret(ctx context.Context, req InterpretRequest) (Interpretation, error)
}

// Notification is one message to deliver to a user, channel-agnostic.
type Notification struct {
	UserID uuid.UUID
	Title  string
	Body   string
}

// Notifier delivers notifications. Email, SMS and push sit behind one
// fan-out on the provider side.
type Notifier interface {
	SendNotification(ctx context.Context, n Notification) error
}

// Calendar pushes a mirrored entry back to the external calendar provider.
type Calendar interface {
	UpsertEntry(ctx context.Context, e *domain.CalendarEntry) error
}

// ---------------------------------------------------------------------------
// Log-only defaults
// ---------------------------------------------------------------------------

// LogNotifier logs notifications instead of delivering them.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{log: logger.With("gateway", "notifier")}
}

func (n *LogNotifier) SendNotification(ctx context.Context, note Notification) error {
	n.log.InfoContext(ctx, "notification",
		slog.String("user_id", note.UserID.String()),
		slog.String("title", note.Title),
		slog.String("body", note.Body),
	)
	return nil
}

// LogCalendar logs upserts instead of syncing them.
type LogCalendar struct {
	log *slog.Logger
}

// NewLogCalendar creates a log-only calendar gateway.
func NewLogCalendar(logger *slog.Logger) *LogCalendar {
	return &LogCalendar{log: logger.With("gateway", "calendar")}
}

func (c *LogCalendar) UpsertEntry(ctx context.Context, e *domain.CalendarEntry) error {
	c.log.InfoContext(ctx, "calendar upsert",
		slog.String("entry_id", e.ID.String()),
		slog.String("external_id", e.ExternalID),
		slog.String("title", e.Title),
	)
	return nil
}

// StaticModel classifies everything as the configured type. It is the
// default language model when no API key is configured, so brain-dump
// processing degrades to "leave it unsorted" instead of failing.
type StaticModel struct {
	Result Interpretation
}

func (m StaticModel) Interpret(context.Context, InterpretRequest) (Interpretation, error) {
	return m.Result, nil
}
