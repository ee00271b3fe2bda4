package bus

import (
	"context"
	"errors"
	"fmt"
)

// Message is a command or query routed by key.
type Message interface {
	Key() string
}

// Handler processes a message and returns a value (if any).
type Handler[M Message, R any] interface {
	Handle(ctx context.Context, msg M) (R, error)
}

// HandlerFunc adapts an ordinary function to Handler.
type HandlerFunc[M Message, R any] func(ctx context.Context, msg M) (R, error)

func (f HandlerFunc[M, R]) Handle(ctx context.Context, msg M) (R, error) {
	return f(ctx, msg)
}

// Bus dispatches messages, possibly through a middleware chain.
type Bus interface {
	Dispatch(ctx context.Context, msg Message) (any, error)
}

var (
	ErrHandlerNotFound = errors.New("bus: handler not found")
	ErrInvalidMessage  = errors.New("bus: invalid message for handler")
	ErrResultType      = errors.New("bus: result type mismatch")
	ErrNilBus          = errors.New("bus: nil bus")
)

type rawHandler func(ctx context.Context, msg Message) (any, error)

// InMemory keeps handlers in a map keyed by message key.
type InMemory struct {
	handlers map[string]rawHandler
}

func NewInMemory() *InMemory {
	return &InMemory{handlers: make(map[string]rawHandler)}
}

func (b *InMemory) Dispatch(ctx context.Context, msg Message) (any, error) {
	h, ok := b.handlers[msg.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHandlerNotFound, msg.Key())
	}
	return h(ctx, msg)
}

// Register attaches a typed handler for the key of M's zero value.
func Register[M Message, R any](b *InMemory, handler Handler[M, R]) {
	if b == nil {
		panic("bus: nil bus")
	}
	var zero M
	key := zero.Key()
	if key == "" {
		panic("bus: empty key registration")
	}
	b.handlers[key] = func(ctx context.Context, raw Message) (any, error) {
		msg, ok := raw.(M)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidMessage, key)
		}
		return handler.Handle(ctx, msg)
	}
}

// Dispatch performs a type-safe invocation against a bus.
func Dispatch[M Message, R any](ctx context.Context, b Bus, msg M) (R, error) {
	var zero R
	if b == nil {
		return zero, ErrNilBus
	}
	res, err := b.Dispatch(ctx, msg)
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}
	value, ok := res.(R)
	if !ok {
		return zero, ErrResultType
	}
	return value, nil
}
