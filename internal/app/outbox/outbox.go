package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tripquote/internal/domain/shared/events"
)

var ErrIncompleteEvent = errors.New("outbox: event needs a name and an aggregate id")

// EventRecord is a domain event serialized for delivery. Aggregate is the aggregate id and
// doubles as the broker partition key, so one booking's events stay ordered.
type EventRecord struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Payload    []byte            `json:"payload"`
	OccurredAt time.Time         `json:"occurred_at"`
	Aggregate  string            `json:"aggregate"`
	Headers    map[string]string `json:"headers"`
}

type Outbox interface {
	Add(ctx context.Context, record EventRecord) error
	Flush(ctx context.Context) error
}

type Encoder interface {
	Encode(ev events.DomainEvent) (EventRecord, error)
}

// JSONEncoder marshals the event itself as the payload.
type JSONEncoder struct {
	NewID func() string
}

func (e JSONEncoder) Encode(ev events.DomainEvent) (EventRecord, error) {
	name := ev.EventName()
	if name == "" || ev.AggregateID() == "" {
		return EventRecord{}, fmt.Errorf("%w: %T", ErrIncompleteEvent, ev)
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return EventRecord{}, fmt.Errorf("outbox: encode %s: %w", name, err)
	}
	newID := e.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return EventRecord{
		ID:         newID(),
		Name:       string(name),
		Payload:    payload,
		OccurredAt: ev.OccurredAt().UTC(),
		Aggregate:  ev.AggregateID(),
		Headers:    map[string]string{"aggregate-type": name.Aggregate()},
	}, nil
}

// Stage encodes the events drained from an aggregate and adds them to box in order. Nothing is
// added when any event fails to encode.
func Stage(ctx context.Context, box Outbox, enc Encoder, evs []events.DomainEvent) error {
	if box == nil || len(evs) == 0 {
		return nil
	}
	if enc == nil {
		enc = JSONEncoder{}
	}
	recs := make([]EventRecord, 0, len(evs))
	for _, ev := range evs {
		rec, err := enc.Encode(ev)
		if err != nil {
			return err
		}
		recs = append(recs, rec)
	}
	for _, rec := range recs {
		if err := box.Add(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
