package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"shopdesk/models"
)

const sessionPrefix = "chat:sess:"

// Store persists conversation sessions between turns. Sessions expire after
// the configured TTL and can be cleared on demand.
type Store interface {
	Get(ctx context.Context, sessionID string) (*models.ConversationSession, error)
	Save(ctx context.Context, sessionID string, sess *models.ConversationSession) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisStore is the Redis-backed Store. Each save refreshes the TTL, so a
// session stays alive as long as the conversation does.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps a Redis client with the session TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get loads a session, returning a fresh chat-mode session when none exists.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.ConversationSession, error) {
	key := sessionPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return models.NewConversationSession(), nil
	}
	if err != nil {
		return nil, err
	}
	var sess models.ConversationSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	if sess.Mode == "" {
		sess.Mode = models.ModeChat
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, sess *models.ConversationSession) error {
	key := sessionPrefix + sessionID
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	key := sessionPrefix + sessionID
	return s.client.Del(ctx, key).Err()
}
