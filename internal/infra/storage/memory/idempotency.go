package memory

import (
	"context"
	"sync"
	"time"

	"tripquote/internal/app/middleware"
)

// IdempotencyStore remembers command results per scoped key. Records older than ttl are treated
// as absent and pruned on the next Save, so a long running process does not keep every
// submission key it ever saw.
type IdempotencyStore struct {
	mu    sync.Mutex
	items map[middleware.IdempotencyKey]middleware.IdempotencyRecord
	ttl   time.Duration
	now   func() time.Time
}

// NewIdempotencyStore builds an empty store; a zero ttl keeps records forever.
func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		items: make(map[middleware.IdempotencyKey]middleware.IdempotencyRecord),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *IdempotencyStore) Get(ctx context.Context, key middleware.IdempotencyKey) (middleware.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.items[key]
	if !ok || s.stale(rec) {
		return middleware.IdempotencyRecord{}, false, nil
	}
	return rec, true, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, rec middleware.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.items[rec.Key] = rec
	return nil
}

func (s *IdempotencyStore) stale(rec middleware.IdempotencyRecord) bool {
	return s.ttl > 0 && s.now().Sub(rec.OccurredAt) >= s.ttl
}

func (s *IdempotencyStore) pruneLocked() {
	if s.ttl <= 0 {
		return
	}
	for key, rec := range s.items {
		if s.stale(rec) {
			delete(s.items, key)
		}
	}
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
