package pending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	regKeyPrefix   = "pending:reg:"
	tokenKeyPrefix = "pending:token:"
)

// RedisStore keeps pending registrations in redis with a native TTL.
// Each registration is stored under its temporary id, with a token
// index key carrying the same TTL for verify-by-token lookups.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps an existing redis client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Put(ctx context.Context, tempID string, reg Registration, ttl time.Duration) error {
	data, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("failed to encode pending registration: %w", err)
	}

	if err := s.rdb.Set(ctx, regKeyPrefix+tempID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store pending registration: %w", err)
	}
	if err := s.rdb.Set(ctx, tokenKeyPrefix+reg.Token, tempID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store verification token index: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, tempID string) (Registration, error) {
	data, err := s.rdb.Get(ctx, regKeyPrefix+tempID).Bytes()
	if errors.Is(err, redis.Nil) {
		return Registration{}, ErrNotFound
	}
	if err != nil {
		return Registration{}, fmt.Errorf("failed to load pending registration: %w", err)
	}

	var reg Registration
	if err := json.Unmarshal(data, &reg); err != nil {
		return Registration{}, fmt.Errorf("failed to decode pending registration: %w", err)
	}
	return reg, nil
}

func (s *RedisStore) GetByToken(ctx context.Context, token string) (string, Registration, error) {
	tempID, err := s.rdb.Get(ctx, tokenKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", Registration{}, ErrNotFound
	}
	if err != nil {
		return "", Registration{}, fmt.Errorf("failed to resolve verification token: %w", err)
	}

	reg, err := s.Get(ctx, tempID)
	if err != nil {
		return "", Registration{}, err
	}
	return tempID, reg, nil
}

func (s *RedisStore) Delete(ctx context.Context, tempID string) error {
	reg, err := s.Get(ctx, tempID)
	if err == nil {
		_ = s.rdb.Del(ctx, tokenKeyPrefix+reg.Token).Err()
	}
	return s.rdb.Del(ctx, regKeyPrefix+tempID).Err()
}
