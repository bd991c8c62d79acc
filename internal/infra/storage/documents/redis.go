package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore хранилище документов в Redis (строковые ключи с префиксом)
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore создает хранилище; prefix добавляется ко всем ключам
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Load - get key=%s: %v", ErrExecQuery, key, err)
	}
	return raw, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: Save - set key=%s: %v", ErrExecQuery, key, err)
	}
	return nil
}
