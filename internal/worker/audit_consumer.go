package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nsqio/go-nsq"

	"shopsready/backend/internal/middleware"
)

type EventStore interface {
	Insert(ctx context.Context, runID, kind, event string, payload []byte) error
}

// AuditConsumer persists every pipeline event into the run_events trail so a
// run's history survives the run row itself being deleted on "start over".
type AuditConsumer struct {
	store EventStore
}

func NewAuditConsumer(store EventStore) *AuditConsumer {
	return &AuditConsumer{store: store}
}

func (c *AuditConsumer) HandleLifecycle(m *nsq.Message) error {
	if len(m.Body) == 0 {
		return nil
	}

	var event RunEvent
	if err := json.Unmarshal(m.Body, &event); err != nil {
		// Poison Pill: Invalid JSON, don't retry
		slog.Error("poison pill: invalid json", "error", err)
		return nil
	}

	ctx := context.Background()
	if event.CorrelationID != "" {
		ctx = middleware.WithCorrelationID(ctx, event.CorrelationID)
	}

	if err := c.store.Insert(ctx, event.RunID, "lifecycle", event.Event, m.Body); err != nil {
		slog.ErrorContext(ctx, "failed to record lifecycle event", "error", err, "run_id", event.RunID)
		return err // Retry
	}

	slog.InfoContext(ctx, "lifecycle event recorded", "run_id", event.RunID, "event", event.Event)
	return nil
}

func (c *AuditConsumer) HandleExport(m *nsq.Message) error {
	if len(m.Body) == 0 {
		return nil
	}

	var event ExportEvent
	if err := json.Unmarshal(m.Body, &event); err != nil {
		slog.Error("poison pill: invalid json", "error", err)
		return nil
	}

	ctx := context.Background()
	if event.CorrelationID != "" {
		ctx = middleware.WithCorrelationID(ctx, event.CorrelationID)
	}

	if err := c.store.Insert(ctx, event.RunID, "export", event.Format, m.Body); err != nil {
		slog.ErrorContext(ctx, "failed to record export event", "error", err, "run_id", event.RunID)
		return err // Retry
	}

	slog.InfoContext(ctx, "export event recorded", "run_id", event.RunID, "format", event.Format)
	return nil
}
