package outbox

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"tripquote/internal/domain/shared/events"
)

// DefaultSource is the CloudEvents source attribute for events from this service.
const DefaultSource = "app://tripquote"

// Publisher delivers a formatted event to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// TopicFor derives "<aggregate>.events.v1" from an event name like "booking.requested".
func TopicFor(name, prefix string) string {
	return prefix + events.Name(name).Aggregate() + ".events.v1"
}

// CloudEvent wraps a record into a structured-mode CloudEvents JSON envelope.
func CloudEvent(rec EventRecord, source string) ([]byte, map[string]string, error) {
	data := map[string]any{}
	if err := json.Unmarshal(rec.Payload, &data); err != nil {
		return nil, nil, err
	}
	if source == "" {
		source = DefaultSource
	}
	evt := map[string]any{
		"specversion":     "1.0",
		"id":              uuid.NewString(),
		"type":            rec.Name + ".v1",
		"source":          source,
		"subject":         rec.Aggregate,
		"time":            rec.OccurredAt,
		"datacontenttype": "application/json",
		"data":            data,
	}
	if trace, ok := rec.Headers["traceparent"]; ok {
		evt["traceparent"] = trace
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, nil, err
	}
	headers := map[string]string{
		"content-type": "application/cloudevents+json",
		"ce-id":        rec.ID,
	}
	for k, v := range rec.Headers {
		headers[k] = v
	}
	return payload, headers, nil
}
