package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisLocalStore struct {
	rdb *redis.Client
}

// NewRedisLocalStore keeps each client's entries in one redis hash.
func NewRedisLocalStore(rdb *redis.Client) LocalStore {
	return &redisLocalStore{
		rdb: rdb,
	}
}

func clientHash(clientID string) string {
	return "travelapp:client:" + clientID
}

func (r *redisLocalStore) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	value, err := r.rdb.HGet(ctx, clientHash(clientID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *redisLocalStore) Set(ctx context.Context, clientID, key, value string) error {
	return r.rdb.HSet(ctx, clientHash(clientID), key, value).Err()
}

func (r *redisLocalStore) Delete(ctx context.Context, clientID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.rdb.HDel(ctx, clientHash(clientID), keys...).Err()
}
