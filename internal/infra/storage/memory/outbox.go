package memory

import (
	"context"
	"log/slog"
	"sync"

	appoutbox "tripquote/internal/app/outbox"
)

// Outbox buffers records until Flush, which hands them to the publisher when one is set and
// otherwise only logs them.
type Outbox struct {
	mu          sync.Mutex
	records     []appoutbox.EventRecord
	publisher   appoutbox.Publisher
	topicPrefix string
	logger      *slog.Logger
}

func NewOutbox(publisher appoutbox.Publisher, topicPrefix string, logger *slog.Logger) *Outbox {
	if logger == nil {
		logger = slog.Default()
	}
	return &Outbox{publisher: publisher, topicPrefix: topicPrefix, logger: logger}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

// Flush delivers buffered records in order. It runs after the command has committed, so a
// publish failure is logged and the record stays buffered for the next flush instead of
// failing the command.
func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	pending := o.records
	o.records = nil
	o.mu.Unlock()

	var failed []appoutbox.EventRecord
	for _, rec := range pending {
		if err := o.deliver(ctx, rec); err != nil {
			o.logger.WarnContext(ctx, "event delivery deferred", "event", rec.Name, "aggregate", rec.Aggregate, "event_id", rec.ID, "error", err)
			failed = append(failed, rec)
		}
	}
	if len(failed) > 0 {
		o.mu.Lock()
		o.records = append(failed, o.records...)
		o.mu.Unlock()
	}
	return nil
}

func (o *Outbox) deliver(ctx context.Context, rec appoutbox.EventRecord) error {
	if o.publisher == nil {
		o.logger.InfoContext(ctx, "event recorded", "event", rec.Name, "aggregate", rec.Aggregate, "event_id", rec.ID)
		return nil
	}
	payload, headers, err := appoutbox.CloudEvent(rec, "")
	if err != nil {
		return err
	}
	return o.publisher.Publish(ctx, appoutbox.TopicFor(rec.Name, o.topicPrefix), rec.Aggregate, payload, headers)
}

// Pending reports how many records wait for delivery.
func (o *Outbox) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.records)
}

var _ appoutbox.Outbox = (*Outbox)(nil)
