package form

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tripquote/internal/domain/catalog"
)

// Service runs booking form sessions. Events for one session are handled one at a time, each
// against the session state freshly loaded from the store.
type Service struct {
	Catalog   *catalog.Catalog
	Store     SessionStore
	Submitter Submitter
	Logger    *slog.Logger
	NewID     func() string
	Now       func() time.Time

	locks keyedLocks
}

// Open starts a new, empty form in its initial invalid state.
func (s *Service) Open(ctx context.Context) (*Session, error) {
	now := s.now()
	sess := &Session{ID: s.newID(), CreatedAt: now, UpdatedAt: now}
	unlock := s.locks.lock(sess.ID)
	defer unlock()

	if _, err := s.dispatch(ctx, sess, nil); err != nil {
		return nil, err
	}
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrSessionIDMissing
	}
	return s.Store.Get(ctx, id)
}

// Input applies field values and dispatches a change or keyup event.
func (s *Service) Input(ctx context.Context, id string, kind EventKind, values map[string]string) (*Session, error) {
	if kind != EventChange && kind != EventKeyUp {
		return nil, ErrUnknownEvent
	}
	if id == "" {
		return nil, ErrSessionIDMissing
	}
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sess.Fields.Apply(values); err != nil {
		return nil, err
	}
	if _, err := s.dispatch(ctx, sess, &Event{Kind: kind}); err != nil {
		return nil, err
	}
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Submit dispatches a submit event.
func (s *Service) Submit(ctx context.Context, id, idempotencyKey string) (*Session, SubmitOutcome, error) {
	if id == "" {
		return nil, SubmitOutcome{}, ErrSessionIDMissing
	}
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, SubmitOutcome{}, err
	}
	outcome, err := s.dispatch(ctx, sess, &Event{Kind: EventSubmit, IdempotencyKey: idempotencyKey})
	if err != nil {
		return nil, SubmitOutcome{}, err
	}
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, SubmitOutcome{}, err
	}
	return sess, outcome, nil
}

// dispatch binds a controller to the session and emits ev, if any.
func (s *Service) dispatch(ctx context.Context, sess *Session, ev *Event) (SubmitOutcome, error) {
	sess.View.Alert = ""
	bus := NewBus()
	ctrl := NewController(Options{
		Catalog:   s.Catalog,
		Fields:    fieldsOf{sess},
		View:      sess,
		Submitter: s.Submitter,
		Logger:    s.logger(),
	})
	unbind := ctrl.Bind(ctx, bus)
	defer unbind()

	sess.UpdatedAt = s.now()
	if ev == nil {
		return SubmitOutcome{}, nil
	}
	if err := bus.Emit(ctx, *ev); err != nil {
		return SubmitOutcome{}, err
	}
	return ctrl.LastSubmit(), nil
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	sync.Mutex
	refs int
}

func (k *keyedLocks) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
