package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"tripquote/internal/app/form"
)

const defaultPrefix = "tripquote:form:"

// SessionStore keeps form sessions as JSON values that expire after ttl of inactivity.
type SessionStore struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewClient(addr, password string, db int) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewSessionStore(client goredis.UniversalClient, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, prefix: defaultPrefix, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, id string) (*form.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, form.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis: load session %s: %w", id, err)
	}
	return decodeSession(raw)
}

func (s *SessionStore) Save(ctx context.Context, sess *form.Session) error {
	if sess == nil || sess.ID == "" {
		return form.ErrSessionIDMissing
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(sess.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: save session %s: %w", sess.ID, err)
	}
	return nil
}

// Ping is used as a readiness check.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) key(id string) string {
	return s.prefix + id
}

func decodeSession(raw []byte) (*form.Session, error) {
	var sess form.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("redis: decode session: %w", err)
	}
	return &sess, nil
}

var _ form.SessionStore = (*SessionStore)(nil)
