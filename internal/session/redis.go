package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "compiler:pending:"

// RedisStore keeps pending rounds in Redis so clarification state survives
// process restarts and is shared across replicas.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, round PendingRound) error {
	payload, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("marshal pending round: %w", err)
	}
	if err := s.client.Set(ctx, key(round.IntentID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store pending round: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, intentID int64) (PendingRound, error) {
	payload, err := s.client.Get(ctx, key(intentID)).Bytes()
	if err == redis.Nil {
		return PendingRound{}, ErrNotFound
	}
	if err != nil {
		return PendingRound{}, fmt.Errorf("load pending round: %w", err)
	}
	var round PendingRound
	if err := json.Unmarshal(payload, &round); err != nil {
		return PendingRound{}, fmt.Errorf("decode pending round: %w", err)
	}
	return round, nil
}

func (s *RedisStore) Delete(ctx context.Context, intentID int64) error {
	if err := s.client.Del(ctx, key(intentID)).Err(); err != nil {
		return fmt.Errorf("delete pending round: %w", err)
	}
	return nil
}

func key(intentID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, intentID)
}
