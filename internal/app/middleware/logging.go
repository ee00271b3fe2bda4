package middleware

import (
	"context"
	"log/slog"
	"time"

	"tripquote/internal/app/bus"
)

// Logging records every dispatched message with its duration and outcome.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next bus.Bus) bus.Bus {
		return busFunc(func(ctx context.Context, msg bus.Message) (any, error) {
			start := time.Now()
			res, err := next.Dispatch(ctx, msg)
			if err != nil {
				logger.WarnContext(ctx, "bus dispatch failed", "key", msg.Key(), "duration", time.Since(start), "error", err)
				return nil, err
			}
			logger.DebugContext(ctx, "bus dispatch", "key", msg.Key(), "duration", time.Since(start))
			return res, nil
		})
	}
}
