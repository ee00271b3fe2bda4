package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	mu        sync.Mutex
	due       []*EventDocument
	sent      []string
	failed    map[string]time.Time
	claimErrs int
}

func (q *fakeQueue) Claim(ctx context.Context, workerID string) (*EventDocument, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.claimErrs > 0 {
		q.claimErrs--
		return nil, errors.New("server selection timeout")
	}
	if len(q.due) == 0 {
		return nil, nil
	}
	doc := q.due[0]
	q.due = q.due[1:]
	return doc, nil
}

func (q *fakeQueue) MarkSent(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sent = append(q.sent, id)
	return nil
}

func (q *fakeQueue) MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.failed == nil {
		q.failed = map[string]time.Time{}
	}
	q.failed[id] = next
	return nil
}

type published struct {
	topic, key string
	payload    []byte
	headers    map[string]string
}

type fakePublisher struct {
	out  []published
	fail bool
}

func (p *fakePublisher) Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.out = append(p.out, published{topic, key, payload, headers})
	return nil
}

func bookingDoc(id string) *EventDocument {
	return &EventDocument{
		ID:         id,
		Name:       "booking.requested",
		Payload:    []byte(`{"submission_id":"sub-1","total":{"amount":2244,"currency":"USD"}}`),
		Aggregate:  "sub-1",
		OccurredAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestWorkerDrainPublishesCloudEvents(t *testing.T) {
	q := &fakeQueue{due: []*EventDocument{bookingDoc("e-1"), bookingDoc("e-2")}}
	pub := &fakePublisher{}
	w := &Worker{Queue: q, Publisher: pub, TopicPrefix: "stage.", ID: "w-1"}

	require.NoError(t, w.drain(context.Background()))
	assert.Equal(t, []string{"e-1", "e-2"}, q.sent)
	require.Len(t, pub.out, 2)
	assert.Equal(t, "stage.booking.events.v1", pub.out[0].topic)
	assert.Equal(t, "sub-1", pub.out[0].key)
	assert.Equal(t, "application/cloudevents+json", pub.out[0].headers["content-type"])

	var evt map[string]any
	require.NoError(t, json.Unmarshal(pub.out[0].payload, &evt))
	assert.Equal(t, "booking.requested.v1", evt["type"])
	assert.Equal(t, "app://tripquote", evt["source"])
}

func TestWorkerSchedulesRetryOnFailure(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := bookingDoc("e-1")
	doc.Attempts = 1
	q := &fakeQueue{due: []*EventDocument{doc}}
	w := &Worker{
		Queue:     q,
		Publisher: &fakePublisher{fail: true},
		Backoff:   []time.Duration{time.Second, 5 * time.Second},
		Now:       func() time.Time { return now },
	}

	require.NoError(t, w.drain(context.Background()))
	assert.Empty(t, q.sent)
	assert.Equal(t, now.Add(5*time.Second), q.failed["e-1"])
}

func TestWorkerBadPayloadIsFailedNotFatal(t *testing.T) {
	doc := bookingDoc("e-1")
	doc.Payload = []byte("not json")
	q := &fakeQueue{due: []*EventDocument{doc}}
	w := &Worker{Queue: q, Publisher: &fakePublisher{}}

	require.NoError(t, w.drain(context.Background()))
	assert.Contains(t, q.failed, "e-1")
}

func TestNextRetry(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	w := &Worker{Now: func() time.Time { return now }}
	assert.Equal(t, now.Add(5*time.Second), w.nextRetry(0))

	w.Backoff = []time.Duration{time.Second, 30 * time.Second}
	assert.Equal(t, now.Add(time.Second), w.nextRetry(0))
	assert.Equal(t, now.Add(30*time.Second), w.nextRetry(7))
}

func (q *fakeQueue) sentIDs() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.sent...)
}

func TestRunKeepsGoingAfterQueueErrors(t *testing.T) {
	q := &fakeQueue{due: []*EventDocument{bookingDoc("e-1")}, claimErrs: 2}
	w := &Worker{Queue: q, Publisher: &fakePublisher{}, Interval: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	assert.Eventually(t, func() bool { return len(q.sentIDs()) == 1 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
	assert.Equal(t, []string{"e-1"}, q.sentIDs())
}

func TestRunRequiresDependencies(t *testing.T) {
	assert.ErrorIs(t, (&Worker{}).Run(context.Background()), ErrWorkerNotConfigured)
}
