package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type Redis struct {
	Client *redis.Client
	Prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{Client: client, Prefix: prefix}
}

func (s *Redis) Read(ctx context.Context, key string) ([]byte, error) {
	b, err := s.Client.Get(ctx, s.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return b, nil
}

func (s *Redis) Write(ctx context.Context, key string, value []byte) error {
	if err := s.Client.Set(ctx, s.Prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *Redis) Delete(ctx context.Context, key string) error {
	if err := s.Client.Del(ctx, s.Prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
