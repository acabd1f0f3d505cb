package redisstore

import (
	"context"
	"errors"
	"fmt"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"

	"github.com/redis/go-redis/v9"
)

var _ application.GoalRepo = (*GoalStore)(nil)

// GoalStore keeps goals in a single Redis hash: field = coin, value = price text.
type GoalStore struct {
	Client *redis.Client
	Key    string
}

func New(client *redis.Client, key string) *GoalStore {
	if key == "" {
		key = "goals"
	}
	return &GoalStore{Client: client, Key: key}
}

func (s *GoalStore) All(ctx context.Context) (domain.GoalMapping, error) {
	m, err := s.Client.HGetAll(ctx, s.Key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: hgetall: %v", application.ErrPersistence, err)
	}
	return domain.GoalMapping(m), nil
}

func (s *GoalStore) Get(ctx context.Context, coin string) (string, bool, error) {
	v, err := s.Client.HGet(ctx, s.Key, coin).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: hget: %v", application.ErrPersistence, err)
	}
	return v, true, nil
}

func (s *GoalStore) Set(ctx context.Context, coin, price string) error {
	if err := s.Client.HSet(ctx, s.Key, coin, price).Err(); err != nil {
		return fmt.Errorf("%w: hset: %v", application.ErrPersistence, err)
	}
	return nil
}

func (s *GoalStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}
