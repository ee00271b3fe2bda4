package form

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripquote/internal/domain/booking"
	"tripquote/internal/domain/catalog"
)

type mapStore struct {
	mu    sync.Mutex
	items map[string]Session
}

func (m *mapStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (m *mapStore) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items == nil {
		m.items = make(map[string]Session)
	}
	m.items[s.ID] = *s
	return nil
}

func newTestService(sub Submitter) *Service {
	n := 0
	return &Service{
		Catalog:   catalog.Default(),
		Store:     &mapStore{},
		Submitter: sub,
		NewID: func() string {
			n++
			return fmt.Sprintf("form-%d", n)
		},
	}
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	sub := &recordingSubmitter{}
	svc := newTestService(sub)

	sess, err := svc.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, "form-1", sess.ID)
	assert.Equal(t, booking.MessageIncomplete, sess.View.Display)

	sess, err = svc.Input(ctx, sess.ID, EventChange, map[string]string{
		booking.FieldName:             "Linus",
		booking.FieldStartDate:        "2025-04-01",
		booking.FieldEndDate:          "2025-04-14",
		booking.FieldPackageSelection: "sam-hist",
		booking.FieldGuests:           "2",
	})
	require.NoError(t, err)
	assert.Equal(t, "$4,450 USD", sess.View.Display)
	assert.True(t, sess.View.SubmitEnabled)

	sess, out, err := svc.Submit(ctx, sess.ID, "idem-1")
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Equal(t, booking.MessageSubmitAccepted+"$4,450 USD", sess.View.Alert)
	assert.Equal(t, booking.Fields{}, sess.Fields)
	assert.Equal(t, booking.MessageIncomplete, sess.View.Display)
	assert.False(t, sess.View.SubmitEnabled)

	stored, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.View, stored.View)
}

func TestServiceInputClearsAlert(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil)
	sess, err := svc.Open(ctx)
	require.NoError(t, err)

	sess, _, err = svc.Submit(ctx, sess.ID, "")
	require.NoError(t, err)
	assert.Equal(t, booking.MessageSubmitBlocked, sess.View.Alert)

	sess, err = svc.Input(ctx, sess.ID, EventKeyUp, map[string]string{booking.FieldName: "L"})
	require.NoError(t, err)
	assert.Empty(t, sess.View.Alert)
}

func TestServiceRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil)
	sess, err := svc.Open(ctx)
	require.NoError(t, err)

	_, err = svc.Input(ctx, sess.ID, EventSubmit, nil)
	assert.ErrorIs(t, err, ErrUnknownEvent)

	_, err = svc.Input(ctx, sess.ID, EventChange, map[string]string{"email": "x"})
	assert.ErrorIs(t, err, booking.ErrUnknownField)

	_, err = svc.Input(ctx, "missing", EventChange, nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, ErrSessionIDMissing)
}

func TestServiceSerializesEventsPerSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil)
	sess, err := svc.Open(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = svc.Input(ctx, sess.ID, EventKeyUp, map[string]string{booking.FieldGuests: fmt.Sprint(i + 1)})
		}(i)
	}
	wg.Wait()

	stored, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Fields.Guests)
	assert.Empty(t, svc.locks.locks)
}
