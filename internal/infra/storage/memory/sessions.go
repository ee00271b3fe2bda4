package memory

import (
	"context"
	"sync"
	"time"

	"tripquote/internal/app/form"
)

// SessionStore keeps form sessions in memory. Stored values are copies, so a caller mutating a
// loaded session does not change the store until Save.
type SessionStore struct {
	mu    sync.RWMutex
	items map[string]form.Session
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionStore builds an empty store. Sessions idle for longer than ttl are dropped; a zero
// ttl keeps them until the process exits.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{items: make(map[string]form.Session), ttl: ttl, now: time.Now}
}

func (s *SessionStore) Get(ctx context.Context, id string) (*form.Session, error) {
	s.mu.RLock()
	sess, ok := s.items[id]
	s.mu.RUnlock()
	if !ok || s.expired(sess) {
		return nil, form.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *form.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[sess.ID] = *sess
	s.evictLocked()
	return nil
}

func (s *SessionStore) expired(sess form.Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.UpdatedAt) > s.ttl
}

func (s *SessionStore) evictLocked() {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.items {
		if s.expired(sess) {
			delete(s.items, id)
		}
	}
}

var _ form.SessionStore = (*SessionStore)(nil)
