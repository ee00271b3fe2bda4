package form

import (
	"context"
	"errors"
	"sync"
)

// EventKind names a form event.
type EventKind string

const (
	EventChange EventKind = "change"
	EventKeyUp  EventKind = "keyup"
	EventSubmit EventKind = "submit"
)

var ErrUnknownEvent = errors.New("form: unknown event kind")

// ParseEventKind accepts the input event kinds a client may send.
func ParseEventKind(raw string) (EventKind, error) {
	switch EventKind(raw) {
	case EventChange, EventKeyUp, EventSubmit:
		return EventKind(raw), nil
	}
	return "", ErrUnknownEvent
}

// Event is a single dispatched form event.
type Event struct {
	Kind EventKind
	// IdempotencyKey is carried by submit events so a retried submit is not booked twice.
	IdempotencyKey string
}

type Listener func(ctx context.Context, ev Event) error

// EventSource lets a controller subscribe to form events.
type EventSource interface {
	Subscribe(kind EventKind, l Listener) (unsubscribe func())
}

// Bus is a synchronous EventSource: Emit runs every listener for the event, in subscription
// order, before returning.
type Bus struct {
	mu        sync.Mutex
	nextID    int
	listeners map[EventKind][]subscription
}

type subscription struct {
	id int
	fn Listener
}

func NewBus() *Bus {
	return &Bus{listeners: make(map[EventKind][]subscription)}
}

func (b *Bus) Subscribe(kind EventKind, l Listener) func() {
	if l == nil {
		panic("form: nil listener")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.listeners[kind] = append(b.listeners[kind], subscription{id: id, fn: l})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.listeners[kind]
		for i, s := range subs {
			if s.id == id {
				b.listeners[kind] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Emit dispatches ev and joins the listener errors.
func (b *Bus) Emit(ctx context.Context, ev Event) error {
	b.mu.Lock()
	subs := append([]subscription(nil), b.listeners[ev.Kind]...)
	b.mu.Unlock()

	var errs []error
	for _, s := range subs {
		if err := s.fn(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ EventSource = (*Bus)(nil)
