package cachestore

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrNilClient is returned when constructing a redis store without a client.
var ErrNilClient = errors.New("redis cachestore: nil client")

// Redis is a Store implementation backed by a redis-compatible KV service.
type Redis struct {
	rdb goredis.UniversalClient
}

// NewRedis constructs a redis store around an existing client. The caller
// retains ownership of the client.
func NewRedis(rdb goredis.UniversalClient) (*Redis, error) {
	if rdb == nil {
		return nil, ErrNilClient
	}

	return &Redis{rdb: rdb}, nil
}

// Get implements the Store interface.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return b, true, nil
}

// Set implements the Store interface.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}

	return r.rdb.Set(ctx, key, value, ttl).Err()
}

// Del implements the Store interface.
func (r *Redis) Del(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}
