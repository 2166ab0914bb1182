package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/config"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/service"
)

// Sessions live at {prefix}session:{id} as JSON with the configured TTL.
// Redis expiry is the only cleanup; there is no sweeper.
const sessionKeyFormat = "%ssession:%s"

type sessionStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionStore returns the Redis-backed session store.
func NewSessionStore(rdb *redis.Client, cfg *config.Config) service.SessionStore {
	return &sessionStore{
		rdb:    rdb,
		prefix: cfg.Session.KeyPrefix,
		ttl:    cfg.Session.TTL(),
	}
}

func (s *sessionStore) key(id string) string {
	return fmt.Sprintf(sessionKeyFormat, s.prefix, id)
}

func (s *sessionStore) Create(ctx context.Context, sess *service.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(sess.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *sessionStore) Get(ctx context.Context, id string) (*service.Session, error) {
	payload, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, service.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess service.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		// A corrupt record is unusable; treat as logged out.
		return nil, service.ErrSessionNotFound
	}

	// Sliding expiry: reading a session keeps it alive.
	_ = s.rdb.Expire(ctx, s.key(id), s.ttl).Err()

	return &sess, nil
}

func (s *sessionStore) Update(ctx context.Context, sess *service.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(sess.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

func (s *sessionStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
