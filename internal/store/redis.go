package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/voyagen/iptvindex/internal/kv"
	"github.com/voyagen/iptvindex/internal/models"
)

// DefaultRedisKey is the key the dataset document is stored under.
const DefaultRedisKey = "iptvindex:channels"

// RedisStore keeps the dataset as one JSON document under a single key,
// the same document FileStore writes to disk.
type RedisStore struct {
	rds *kv.Redis
	key string
}

// NewRedisStore wraps an open Redis client. key defaults to DefaultRedisKey.
func NewRedisStore(rds *kv.Redis, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{rds: rds, key: key}
}

func (s *RedisStore) String() string { return "redis key " + s.key }

// Load fetches and decodes the dataset document.
func (s *RedisStore) Load(ctx context.Context) ([]models.Channel, error) {
	raw, err := s.rds.Get(ctx, s.key)
	if errors.Is(err, kv.ErrMissing) {
		return nil, ErrNotPublished
	}
	if err != nil {
		return nil, err
	}
	var channels []models.Channel
	if err := json.Unmarshal(raw, &channels); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	if channels == nil {
		channels = []models.Channel{}
	}
	return channels, nil
}

// Publish replaces the dataset document.
func (s *RedisStore) Publish(ctx context.Context, channels []models.Channel) error {
	data, err := EncodeChannels(channels)
	if err != nil {
		return err
	}
	return s.rds.Set(ctx, s.key, data, 0)
}

// Close shuts down the Redis client.
func (s *RedisStore) Close() error {
	return s.rds.Close()
}
