package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionEnvelope is the Redis payload: snapshot plus the structural data the
// session was opened with, so an event on any instance can restore it without
// a database round trip.
type sessionEnvelope struct {
	Data     SectionData `json:"data"`
	Snapshot Snapshot    `json:"snapshot"`
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore persists sessions in Redis under a TTL. Every save
// refreshes the TTL, so a session dies only after sitting idle.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "preview:session:" + id
}

func (r *redisSessionStore) Save(ctx context.Context, id string, session *Session) error {
	envelope := sessionEnvelope{
		Data:     session.Data(),
		Snapshot: session.Snapshot(),
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal preview session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(id), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save preview session: %w", err)
	}
	return nil
}

func (r *redisSessionStore) Load(ctx context.Context, id string) (*Session, error) {
	payload, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preview session: %w", err)
	}

	var envelope sessionEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preview session: %w", err)
	}
	return RestoreSession(envelope.Data, envelope.Snapshot), nil
}

func (r *redisSessionStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete preview session: %w", err)
	}
	return nil
}
