package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tripquote/internal/app/bus"
)

// IdempotentMessage is implemented by commands that must run at most once per key.
type IdempotentMessage interface {
	bus.Message
	IdempotencyKey() string
	// ResultPrototype returns a pointer to decode a replayed result into.
	ResultPrototype() any
}

// IdempotencyKey scopes a client supplied key to the command it came with, so the same
// header value sent to two different commands never collides.
type IdempotencyKey struct {
	Command string
	Client  string
}

func (k IdempotencyKey) String() string {
	return k.Command + ":" + k.Client
}

type IdempotencyRecord struct {
	Key        IdempotencyKey
	Payload    []byte
	Error      string
	OccurredAt time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key IdempotencyKey) (IdempotencyRecord, bool, error)
	Save(ctx context.Context, rec IdempotencyRecord) error
}

var errMissingPrototype = errors.New("middleware: idempotent command requires result prototype")

// Idempotency replays the stored result (or error) for a repeated key. Records older than
// ttl are ignored; a zero ttl keeps them forever.
func Idempotency(store IdempotencyStore, ttl time.Duration) Middleware {
	if store == nil {
		panic("middleware: idempotency store required")
	}
	return func(next bus.Bus) bus.Bus {
		return busFunc(func(ctx context.Context, msg bus.Message) (any, error) {
			idMsg, ok := msg.(IdempotentMessage)
			if !ok || idMsg.IdempotencyKey() == "" {
				return next.Dispatch(ctx, msg)
			}
			key := IdempotencyKey{Command: msg.Key(), Client: idMsg.IdempotencyKey()}
			rec, found, err := store.Get(ctx, key)
			if err != nil {
				return nil, err
			}
			if found && (ttl <= 0 || time.Since(rec.OccurredAt) < ttl) {
				return replay(rec, idMsg)
			}

			result, err := next.Dispatch(ctx, msg)
			record := IdempotencyRecord{Key: key, OccurredAt: time.Now().UTC()}
			if err != nil {
				record.Error = err.Error()
				if saveErr := store.Save(ctx, record); saveErr != nil {
					return nil, errors.Join(err, saveErr)
				}
				return nil, err
			}
			if result != nil {
				payload, encErr := json.Marshal(result)
				if encErr != nil {
					return nil, encErr
				}
				record.Payload = payload
			}
			if saveErr := store.Save(ctx, record); saveErr != nil {
				return nil, saveErr
			}
			return result, nil
		})
	}
}

func replay(rec IdempotencyRecord, msg IdempotentMessage) (any, error) {
	if rec.Error != "" {
		return nil, errors.New(rec.Error)
	}
	proto := msg.ResultPrototype()
	if proto == nil {
		return nil, errMissingPrototype
	}
	if len(rec.Payload) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(rec.Payload, proto); err != nil {
		return nil, err
	}
	return proto, nil
}
