package outbox

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripquote/internal/domain/shared/events"
)

type sampleEvent struct {
	Ref string    `json:"ref"`
	At  time.Time `json:"at"`
}

func (e sampleEvent) EventName() events.Name { return "booking.requested" }
func (e sampleEvent) AggregateID() string    { return e.Ref }
func (e sampleEvent) OccurredAt() time.Time  { return e.At }

type sliceOutbox struct{ records []EventRecord }

func (s *sliceOutbox) Add(ctx context.Context, r EventRecord) error {
	s.records = append(s.records, r)
	return nil
}
func (s *sliceOutbox) Flush(ctx context.Context) error { return nil }

func TestStageEncodesInOrder(t *testing.T) {
	at := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	box := &sliceOutbox{}
	enc := JSONEncoder{NewID: func() string { return "evt-1" }}

	err := Stage(context.Background(), box, enc, []events.DomainEvent{sampleEvent{Ref: "sub-9", At: at}})
	require.NoError(t, err)
	require.Len(t, box.records, 1)

	rec := box.records[0]
	assert.Equal(t, "evt-1", rec.ID)
	assert.Equal(t, "booking.requested", rec.Name)
	assert.Equal(t, "sub-9", rec.Aggregate)
	assert.Equal(t, at, rec.OccurredAt)
	assert.Equal(t, "booking", rec.Headers["aggregate-type"])
	assert.JSONEq(t, `{"ref":"sub-9","at":"2025-02-03T04:05:06Z"}`, string(rec.Payload))

	assert.NoError(t, Stage(context.Background(), nil, enc, []events.DomainEvent{sampleEvent{}}))
}

func TestStageAddsNothingWhenAnEventIsIncomplete(t *testing.T) {
	box := &sliceOutbox{}
	evs := []events.DomainEvent{sampleEvent{Ref: "sub-1"}, sampleEvent{}}

	err := Stage(context.Background(), box, JSONEncoder{}, evs)
	assert.ErrorIs(t, err, ErrIncompleteEvent)
	assert.Empty(t, box.records)
}

func TestTopicFor(t *testing.T) {
	assert.Equal(t, "booking.events.v1", TopicFor("booking.requested", ""))
	assert.Equal(t, "dev.booking.events.v1", TopicFor("booking.requested", "dev."))
	assert.Equal(t, "ping.events.v1", TopicFor("ping", ""))
}

func TestCloudEventEnvelope(t *testing.T) {
	rec := EventRecord{
		ID:         "evt-1",
		Name:       "booking.requested",
		Payload:    []byte(`{"nights":9}`),
		Aggregate:  "sub-1",
		OccurredAt: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		Headers:    map[string]string{"traceparent": "00-abc-def-01"},
	}
	payload, headers, err := CloudEvent(rec, "")
	require.NoError(t, err)
	assert.Equal(t, "application/cloudevents+json", headers["content-type"])
	assert.Equal(t, "evt-1", headers["ce-id"])

	var env map[string]any
	require.NoError(t, json.Unmarshal(payload, &env))
	assert.Equal(t, "1.0", env["specversion"])
	assert.Equal(t, "booking.requested.v1", env["type"])
	assert.Equal(t, DefaultSource, env["source"])
	assert.Equal(t, "sub-1", env["subject"])
	assert.Equal(t, "00-abc-def-01", env["traceparent"])
	assert.Equal(t, map[string]any{"nights": float64(9)}, env["data"])

	_, _, err = CloudEvent(EventRecord{Payload: []byte("not json")}, "")
	assert.Error(t, err)
}
