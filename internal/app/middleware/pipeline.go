package middleware

import (
	"context"

	"tripquote/internal/app/bus"
)

// Middleware wraps a bus with additional behavior (logging, idempotency, outbox flush).
type Middleware func(next bus.Bus) bus.Bus

// Chain builds a bus wrapped with the provided middleware (outermost first).
func Chain(base bus.Bus, mws ...Middleware) bus.Bus {
	wrapped := base
	for i := len(mws) - 1; i >= 0; i-- {
		wrapped = mws[i](wrapped)
	}
	return wrapped
}

type busFunc func(ctx context.Context, msg bus.Message) (any, error)

func (f busFunc) Dispatch(ctx context.Context, msg bus.Message) (any, error) {
	return f(ctx, msg)
}
